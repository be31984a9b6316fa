package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/unicorn-ar/internal/application/dto"
	"github.com/jhoicas/unicorn-ar/internal/domain"
	"github.com/jhoicas/unicorn-ar/internal/domain/repository"
)

const monthLayout = "2006-01"

// InvoiceUseCase consultas de facturas: lookup, vencidas y resumen mensual.
type InvoiceUseCase struct {
	invoices        repository.InvoiceRepository
	reports         repository.ReportRepository
	loc             *time.Location
	defaultCurrency string
}

// NewInvoiceUseCase construye el caso de uso. timezone resuelve el "hoy" del
// listado de vencidas cuando el caller no manda as_of.
func NewInvoiceUseCase(invoices repository.InvoiceRepository, reports repository.ReportRepository, timezone, defaultCurrency string) (*InvoiceUseCase, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", timezone, err)
	}
	return &InvoiceUseCase{
		invoices:        invoices,
		reports:         reports,
		loc:             loc,
		defaultCurrency: defaultCurrency,
	}, nil
}

// GetByNumber devuelve una factura por su clave de negocio; ErrNotFound si no existe.
func (uc *InvoiceUseCase) GetByNumber(invoiceNumber string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByNumber(invoiceNumber)
	if err != nil {
		return nil, err
	}
	out := &dto.InvoiceResponse{
		ID:               inv.ID,
		InvoiceNumber:    inv.InvoiceNumber,
		CustomerID:       inv.CustomerID,
		CustomerName:     inv.CustomerName,
		CustomerPoNumber: inv.CustomerPoNumber,
		BillTotal:        inv.BillTotal,
		Applied:          inv.Applied,
		Status:           inv.Status,
		Currency:         inv.Currency,
		CustomerTerms:    inv.CustomerTerms,
		TermsDays:        inv.TermsDays,
	}
	if inv.InvoiceDate != nil {
		out.InvoiceDate = inv.InvoiceDate.Format(dateLayout)
	}
	if inv.DueDate != nil {
		out.DueDate = inv.DueDate.Format(dateLayout)
	}
	return out, nil
}

// ListPastDue lista facturas con saldo pendiente y due_date anterior a asOf.
// asOf nil = hoy en la zona configurada. El total se cuenta antes de paginar;
// un offset más allá del total devuelve items vacío con total intacto.
func (uc *InvoiceUseCase) ListPastDue(ctx context.Context, asOf *time.Time, limit, offset int, sort string) (*dto.PastDueResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	cutoff := uc.today()
	if asOf != nil {
		cutoff = *asOf
	}

	order := repository.SortDueDateAsc
	if sort == string(repository.SortDueDateDesc) {
		order = repository.SortDueDateDesc
	}

	total, err := uc.reports.CountPastDue(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reports.ListPastDue(ctx, cutoff, order, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PastDueInvoiceItem, 0, len(rows))
	for _, row := range rows {
		outstanding := row.BillTotal.Sub(row.Applied)
		if outstanding.IsNegative() {
			outstanding = decimal.Zero
		}
		item := dto.PastDueInvoiceItem{
			InvoiceNumber: row.InvoiceNumber,
			CustomerName:  row.CustomerName,
			DueDate:       row.DueDate.Format(dateLayout),
			BillTotal:     row.BillTotal,
			Applied:       row.Applied,
			Outstanding:   outstanding,
			Currency:      row.Currency,
			Status:        row.Status,
			DaysPastDue:   daysBetween(row.DueDate, cutoff),
		}
		if row.InvoiceDate != nil {
			item.InvoiceDate = row.InvoiceDate.Format(dateLayout)
		}
		items = append(items, item)
	}

	return &dto.PastDueResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// MonthlySummary suma bill_total y cuenta facturas del mes (YYYY-MM), con
// filtro opcional por cliente. Mes sin facturas devuelve cero y la moneda por
// defecto; mes no parseable es ErrInvalidInput.
func (uc *InvoiceUseCase) MonthlySummary(ctx context.Context, month, customerName string) (*dto.MonthlySummaryResponse, error) {
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	totals, err := uc.reports.MonthlyTotals(ctx, first, next, customerName)
	if err != nil {
		return nil, err
	}
	currency := totals.Currency
	if currency == "" {
		currency = uc.defaultCurrency
	}
	return &dto.MonthlySummaryResponse{
		Month:         month,
		Currency:      currency,
		SumBillTotal:  totals.SumBillTotal,
		CountInvoices: totals.CountInvoices,
	}, nil
}

// today devuelve la fecha actual en la zona de reportes, truncada a día (UTC
// a medianoche, igual que las fechas DATE que entrega la base).
func (uc *InvoiceUseCase) today() time.Time {
	now := time.Now().In(uc.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween días calendario entre dos fechas a medianoche.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
