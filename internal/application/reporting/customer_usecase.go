package reporting

import (
	"context"

	"github.com/jhoicas/unicorn-ar/internal/application/dto"
	"github.com/jhoicas/unicorn-ar/internal/domain"
	"github.com/jhoicas/unicorn-ar/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// CustomerUseCase consultas de clientes y contactos.
type CustomerUseCase struct {
	customers repository.CustomerRepository
	reports   repository.ReportRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customers repository.CustomerRepository, reports repository.ReportRepository) *CustomerUseCase {
	return &CustomerUseCase{customers: customers, reports: reports}
}

// List devuelve todos los clientes con su contacto, ordenados por nombre.
func (uc *CustomerUseCase) List() ([]*dto.CustomerResponse, error) {
	list, err := uc.customers.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, &dto.CustomerResponse{
			ID:           c.ID,
			Name:         c.Name,
			ContactName:  c.ContactName,
			ContactPhone: c.ContactPhone,
			ContactEmail: c.ContactEmail,
		})
	}
	return out, nil
}

// GetByID devuelve un cliente por ID; domain.ErrNotFound si no existe.
func (uc *CustomerUseCase) GetByID(id int) (*dto.CustomerResponse, error) {
	c, err := uc.customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		ContactName:  c.ContactName,
		ContactPhone: c.ContactPhone,
		ContactEmail: c.ContactEmail,
	}, nil
}

// GetContact busca contactos por nombre de cliente (case-insensitive, match
// exacto) con la fecha de última factura. Cero coincidencias es ErrNotFound.
func (uc *CustomerUseCase) GetContact(ctx context.Context, name string, limit, offset int) (*dto.CustomerContactResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	total, err := uc.reports.CountCustomersByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, domain.ErrNotFound
	}

	rows, err := uc.reports.ContactsByName(ctx, name, limit, offset)
	if err != nil {
		return nil, err
	}

	contacts := make([]dto.ContactInfo, 0, len(rows))
	for _, row := range rows {
		info := dto.ContactInfo{
			ContactName:  row.ContactName,
			ContactEmail: row.ContactEmail,
			ContactPhone: row.ContactPhone,
		}
		if row.LastInvoiceDate != nil {
			info.LastSeenInvoiceDate = row.LastInvoiceDate.Format(dateLayout)
		}
		contacts = append(contacts, info)
	}

	// El nombre con su casing canónico sale de la primera fila; si la página
	// quedó vacía (offset más allá del total) se devuelve el solicitado.
	customerName := name
	if len(rows) > 0 {
		customerName = rows[0].CustomerName
	}

	return &dto.CustomerContactResponse{
		CustomerName: customerName,
		Contacts:     contacts,
		Total:        len(contacts),
	}, nil
}
