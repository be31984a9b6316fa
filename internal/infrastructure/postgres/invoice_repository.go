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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Upsert inserta o actualiza por invoice_number. En conflicto se sobreescriben
// todas las columnas mutables con los valores de la fila más reciente, lo que
// hace idempotente la re-ingesta y resuelve duplicados dentro de un archivo
// (la última fila del número gana).
func (r *InvoiceRepo) Upsert(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (invoice_number, customer_id, invoice_date, due_date,
			customer_po_number, bill_total, applied, status, currency, customer_terms, terms_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (invoice_number) DO UPDATE SET
			customer_id        = EXCLUDED.customer_id,
			invoice_date       = EXCLUDED.invoice_date,
			due_date           = EXCLUDED.due_date,
			customer_po_number = EXCLUDED.customer_po_number,
			bill_total         = EXCLUDED.bill_total,
			applied            = EXCLUDED.applied,
			status             = EXCLUDED.status,
			currency           = EXCLUDED.currency,
			customer_terms     = EXCLUDED.customer_terms,
			terms_days         = EXCLUDED.terms_days`
	_, err := r.q.Exec(context.Background(), query,
		inv.InvoiceNumber, inv.CustomerID, inv.InvoiceDate, inv.DueDate,
		nullIfEmpty(inv.CustomerPoNumber), inv.BillTotal, inv.Applied,
		nullIfEmpty(inv.Status), nullIfEmpty(inv.Currency), nullIfEmpty(inv.CustomerTerms), inv.TermsDays,
	)
	if err != nil {
		return fmt.Errorf("upsert invoice %q: %w", inv.InvoiceNumber, err)
	}
	return nil
}

// GetByNumber obtiene una factura por su clave de negocio, con el nombre del cliente.
func (r *InvoiceRepo) GetByNumber(invoiceNumber string) (*entity.Invoice, error) {
	query := `
		SELECT i.id, i.invoice_number, i.customer_id, c.name,
		       i.invoice_date, i.due_date, COALESCE(i.customer_po_number, ''),
		       i.bill_total, i.applied, COALESCE(i.status, ''), COALESCE(i.currency, ''),
		       COALESCE(i.customer_terms, ''), i.terms_days
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		WHERE i.invoice_number = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, invoiceNumber).Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &inv.CustomerName,
		&inv.InvoiceDate, &inv.DueDate, &inv.CustomerPoNumber,
		&inv.BillTotal, &inv.Applied, &inv.Status, &inv.Currency,
		&inv.CustomerTerms, &inv.TermsDays,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}
