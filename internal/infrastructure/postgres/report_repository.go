package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/unicorn-ar/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes AR (contactos,
// vencidas, resumen mensual). Siempre va contra el pool: las lecturas no
// participan de la transacción de carga.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// CountCustomersByName cuenta clientes con match exacto case-insensitive.
func (r *ReportRepo) CountCustomersByName(ctx context.Context, name string) (int, error) {
	const query = `SELECT COUNT(*) FROM customers WHERE LOWER(name) = LOWER($1)`
	var total int
	if err := r.pool.QueryRow(ctx, query, name).Scan(&total); err != nil {
		return 0, fmt.Errorf("report.CountCustomersByName: %w", err)
	}
	return total, nil
}

// ContactsByName devuelve los contactos del cliente con la fecha de su última
// factura. LEFT JOIN: un cliente sin facturas aparece con fecha NULL.
func (r *ReportRepo) ContactsByName(ctx context.Context, name string, limit, offset int) ([]repository.ContactRow, error) {
	const query = `
	SELECT
	    c.name,
	    COALESCE(c.contact_name,  ''),
	    COALESCE(c.contact_phone, ''),
	    COALESCE(c.contact_email, ''),
	    MAX(i.invoice_date) AS last_seen_invoice_date
	FROM customers c
	LEFT JOIN invoices i ON i.customer_id = c.id
	WHERE LOWER(c.name) = LOWER($1)
	GROUP BY c.id, c.name, c.contact_name, c.contact_phone, c.contact_email
	ORDER BY c.name
	LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, name, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("report.ContactsByName: %w", err)
	}
	defer rows.Close()

	var list []repository.ContactRow
	for rows.Next() {
		var row repository.ContactRow
		if err := rows.Scan(
			&row.CustomerName, &row.ContactName, &row.ContactPhone, &row.ContactEmail,
			&row.LastInvoiceDate,
		); err != nil {
			return nil, fmt.Errorf("report.ContactsByName scan: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Filtro base de vencidas: saldo positivo y due_date anterior a la fecha de corte.
const pastDueWhere = `
	WHERE COALESCE(i.bill_total, 0) - COALESCE(i.applied, 0) > 0
	  AND i.due_date < $1`

// CountPastDue total de facturas vencidas antes de paginar.
func (r *ReportRepo) CountPastDue(ctx context.Context, asOf time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM invoices i` + pastDueWhere
	var total int
	if err := r.pool.QueryRow(ctx, query, asOf).Scan(&total); err != nil {
		return 0, fmt.Errorf("report.CountPastDue: %w", err)
	}
	return total, nil
}

// ListPastDue página de facturas vencidas con el nombre del cliente.
func (r *ReportRepo) ListPastDue(ctx context.Context, asOf time.Time, sort repository.SortDueDate, limit, offset int) ([]repository.PastDueRow, error) {
	order := "i.due_date ASC"
	if sort == repository.SortDueDateDesc {
		order = "i.due_date DESC"
	}
	query := `
	SELECT
	    i.invoice_number,
	    c.name,
	    i.invoice_date,
	    i.due_date,
	    COALESCE(i.bill_total, 0),
	    COALESCE(i.applied,    0),
	    COALESCE(i.currency,  ''),
	    COALESCE(i.status,    '')
	FROM invoices i
	JOIN customers c ON c.id = i.customer_id` + pastDueWhere + `
	ORDER BY ` + order + `
	LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, asOf, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("report.ListPastDue: %w", err)
	}
	defer rows.Close()

	var list []repository.PastDueRow
	for rows.Next() {
		var row repository.PastDueRow
		if err := rows.Scan(
			&row.InvoiceNumber, &row.CustomerName, &row.InvoiceDate, &row.DueDate,
			&row.BillTotal, &row.Applied, &row.Currency, &row.Status,
		); err != nil {
			return nil, fmt.Errorf("report.ListPastDue scan: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// MonthlyTotals agrega bill_total y conteo del rango [first, next), con filtro
// opcional por nombre de cliente. Usa COALESCE para devolver cero y la moneda
// por defecto cuando el mes no tiene facturas; la moneda reportada es la menor
// lexicográfica entre las filas del mes.
func (r *ReportRepo) MonthlyTotals(ctx context.Context, first, next time.Time, customerName string) (repository.MonthlyTotals, error) {
	query := `
	SELECT
	    COALESCE(SUM(i.bill_total), 0) AS sum_bill_total,
	    COUNT(*)                       AS count_invoices,
	    COALESCE(MIN(i.currency), '')  AS currency
	FROM invoices i
	JOIN customers c ON c.id = i.customer_id
	WHERE i.invoice_date >= $1
	  AND i.invoice_date <  $2`
	args := []any{first, next}
	if customerName != "" {
		query += ` AND LOWER(c.name) = LOWER($3)`
		args = append(args, customerName)
	}

	var out repository.MonthlyTotals
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&out.SumBillTotal, &out.CountInvoices, &out.Currency,
	); err != nil {
		return repository.MonthlyTotals{}, fmt.Errorf("report.MonthlyTotals: %w", err)
	}
	return out, nil
}
