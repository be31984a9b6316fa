package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ContactRow contacto de un cliente con la fecha de su última factura.
type ContactRow struct {
	CustomerName    string
	ContactName     string
	ContactPhone    string
	ContactEmail    string
	LastInvoiceDate *time.Time // nil si el cliente no tiene facturas (LEFT JOIN)
}

// PastDueRow factura vencida con saldo pendiente (fila cruda, sin derivados).
type PastDueRow struct {
	InvoiceNumber string
	CustomerName  string
	InvoiceDate   *time.Time
	DueDate       time.Time
	BillTotal     decimal.Decimal
	Applied       decimal.Decimal
	Currency      string
	Status        string
}

// MonthlyTotals agregado de facturación de un mes.
type MonthlyTotals struct {
	SumBillTotal  decimal.Decimal
	CountInvoices int
	Currency      string
}

// SortDueDate orden del listado de vencidas.
type SortDueDate string

const (
	SortDueDateAsc  SortDueDate = "due_date.asc"
	SortDueDateDesc SortDueDate = "due_date.desc"
)

// ReportRepository consultas de solo lectura para la capa de reportes.
type ReportRepository interface {
	// CountCustomersByName cuenta clientes con match exacto case-insensitive.
	CountCustomersByName(ctx context.Context, name string) (int, error)
	// ContactsByName devuelve contactos con MAX(invoice_date) por cliente
	// (LEFT JOIN: clientes sin facturas aparecen con fecha nil).
	ContactsByName(ctx context.Context, name string, limit, offset int) ([]ContactRow, error)
	// CountPastDue total de facturas con saldo > 0 y due_date < asOf (antes de paginar).
	CountPastDue(ctx context.Context, asOf time.Time) (int, error)
	// ListPastDue página de facturas vencidas ordenadas por due_date.
	ListPastDue(ctx context.Context, asOf time.Time, sort SortDueDate, limit, offset int) ([]PastDueRow, error)
	// MonthlyTotals suma de bill_total y conteo de facturas con invoice_date
	// en [first, next). customerName vacío = sin filtro.
	MonthlyTotals(ctx context.Context, first, next time.Time, customerName string) (MonthlyTotals, error)
}
