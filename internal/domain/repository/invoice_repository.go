package repository

import "github.com/jhoicas/unicorn-ar/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	// Upsert inserta o actualiza por invoice_number (clave de negocio).
	// En conflicto se sobreescriben todas las columnas mutables, así una
	// re-ingesta del mismo archivo es idempotente.
	Upsert(invoice *entity.Invoice) error
	GetByNumber(invoiceNumber string) (*entity.Invoice, error)
}
