package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/unicorn-ar/internal/domain"
	"github.com/jhoicas/unicorn-ar/internal/domain/entity"
	"github.com/jhoicas/unicorn-ar/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// ReplaceAll borra la tabla e inserta la lista completa con sus IDs de corrida.
// Debe ejecutarse dentro de la transacción de carga (FK de invoices diferida).
func (r *CustomerRepo) ReplaceAll(customers []*entity.Customer) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM customers`); err != nil {
		return fmt.Errorf("delete customers: %w", err)
	}
	query := `
		INSERT INTO customers (id, name, contact_name, contact_phone, contact_email)
		VALUES ($1, $2, $3, $4, $5)`
	for _, c := range customers {
		_, err := r.q.Exec(ctx, query,
			c.ID, c.Name, nullIfEmpty(c.ContactName), nullIfEmpty(c.ContactPhone), nullIfEmpty(c.ContactEmail),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("insert customer %q: %w", c.Name, domain.ErrDuplicate)
			}
			return fmt.Errorf("insert customer %q: %w", c.Name, err)
		}
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id int) (*entity.Customer, error) {
	query := `
		SELECT id, name, COALESCE(contact_name, ''), COALESCE(contact_phone, ''), COALESCE(contact_email, '')
		FROM customers WHERE id = $1`
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.ContactName, &c.ContactPhone, &c.ContactEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List devuelve todos los clientes ordenados por nombre.
func (r *CustomerRepo) List() ([]*entity.Customer, error) {
	query := `
		SELECT id, name, COALESCE(contact_name, ''), COALESCE(contact_phone, ''), COALESCE(contact_email, '')
		FROM customers ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.ContactName, &c.ContactPhone, &c.ContactEmail); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
