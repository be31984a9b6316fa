package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/unicorn-ar/internal/application/reporting"
	"github.com/jhoicas/unicorn-ar/internal/domain"
	"github.com/jhoicas/unicorn-ar/internal/domain/entity"
	"github.com/jhoicas/unicorn-ar/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers []*entity.Customer
}

func (f *fakeCustomerRepo) ReplaceAll(customers []*entity.Customer) error {
	f.customers = customers
	return nil
}

func (f *fakeCustomerRepo) GetByID(id int) (*entity.Customer, error) {
	for _, c := range f.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCustomerRepo) List() ([]*entity.Customer, error) {
	return f.customers, nil
}

type fakeInvoiceRepo struct {
	byNumber map[string]*entity.Invoice
}

func (f *fakeInvoiceRepo) Upsert(inv *entity.Invoice) error {
	if f.byNumber == nil {
		f.byNumber = make(map[string]*entity.Invoice)
	}
	f.byNumber[inv.InvoiceNumber] = inv
	return nil
}

func (f *fakeInvoiceRepo) GetByNumber(n string) (*entity.Invoice, error) {
	if inv, ok := f.byNumber[n]; ok {
		return inv, nil
	}
	return nil, domain.ErrNotFound
}

type fakeReportRepo struct {
	contactTotal  int
	contacts      []repository.ContactRow
	pastDueTotal  int
	pastDue       []repository.PastDueRow
	monthly       repository.MonthlyTotals
	gotFirst      time.Time
	gotNext       time.Time
	gotAsOf       time.Time
	gotLimit      int
	gotOffset     int
	gotSort       repository.SortDueDate
}

func (f *fakeReportRepo) CountCustomersByName(_ context.Context, _ string) (int, error) {
	return f.contactTotal, nil
}

func (f *fakeReportRepo) ContactsByName(_ context.Context, _ string, limit, offset int) ([]repository.ContactRow, error) {
	f.gotLimit, f.gotOffset = limit, offset
	return f.contacts, nil
}

func (f *fakeReportRepo) CountPastDue(_ context.Context, asOf time.Time) (int, error) {
	f.gotAsOf = asOf
	return f.pastDueTotal, nil
}

func (f *fakeReportRepo) ListPastDue(_ context.Context, asOf time.Time, sort repository.SortDueDate, limit, offset int) ([]repository.PastDueRow, error) {
	f.gotAsOf, f.gotSort, f.gotLimit, f.gotOffset = asOf, sort, limit, offset
	return f.pastDue, nil
}

func (f *fakeReportRepo) MonthlyTotals(_ context.Context, first, next time.Time, _ string) (repository.MonthlyTotals, error) {
	f.gotFirst, f.gotNext = first, next
	return f.monthly, nil
}

func newInvoiceUC(t *testing.T, reports *fakeReportRepo, invoices *fakeInvoiceRepo) *reporting.InvoiceUseCase {
	t.Helper()
	if invoices == nil {
		invoices = &fakeInvoiceRepo{}
	}
	uc, err := reporting.NewInvoiceUseCase(invoices, reports, "America/New_York", "USD")
	require.NoError(t, err)
	return uc
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ──────────────────────────────────────────────────────────────────────────────
// Vencidas
// ──────────────────────────────────────────────────────────────────────────────

func TestListPastDue_DerivadosDelEscenarioDeReferencia(t *testing.T) {
	// Factura 100.00 con 40.00 aplicado, vencida el 2024-02-14; corte 2024-03-01.
	reports := &fakeReportRepo{
		pastDueTotal: 1,
		pastDue: []repository.PastDueRow{{
			InvoiceNumber: "INV-1",
			CustomerName:  "Acme",
			DueDate:       date(2024, time.February, 14),
			BillTotal:     decimal.RequireFromString("100.00"),
			Applied:       decimal.RequireFromString("40.00"),
			Currency:      "USD",
			Status:        "Open",
		}},
	}
	uc := newInvoiceUC(t, reports, nil)

	asOf := date(2024, time.March, 1)
	out, err := uc.ListPastDue(context.Background(), &asOf, 50, 0, "due_date.asc")
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	item := out.Items[0]
	assert.True(t, item.Outstanding.Equal(decimal.RequireFromString("60.00")))
	assert.Equal(t, 16, item.DaysPastDue)
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, repository.SortDueDateAsc, reports.gotSort)
	assert.Equal(t, asOf, reports.gotAsOf)
}

func TestListPastDue_OutstandingConPisoEnCero(t *testing.T) {
	reports := &fakeReportRepo{
		pastDueTotal: 1,
		pastDue: []repository.PastDueRow{{
			InvoiceNumber: "INV-2",
			DueDate:       date(2024, time.January, 1),
			BillTotal:     decimal.RequireFromString("50.00"),
			Applied:       decimal.RequireFromString("80.00"),
		}},
	}
	uc := newInvoiceUC(t, reports, nil)

	asOf := date(2024, time.February, 1)
	out, err := uc.ListPastDue(context.Background(), &asOf, 50, 0, "")
	require.NoError(t, err)
	assert.True(t, out.Items[0].Outstanding.IsZero(), "el saldo nunca se reporta negativo")
}

func TestListPastDue_ClampDePaginacionYOrden(t *testing.T) {
	reports := &fakeReportRepo{}
	uc := newInvoiceUC(t, reports, nil)
	asOf := date(2024, time.March, 1)

	out, err := uc.ListPastDue(context.Background(), &asOf, 999, -3, "due_date.desc")
	require.NoError(t, err)
	assert.Equal(t, 200, out.Limit, "limit se recorta al máximo")
	assert.Equal(t, 0, out.Offset)
	assert.Equal(t, repository.SortDueDateDesc, reports.gotSort)

	_, err = uc.ListPastDue(context.Background(), &asOf, 0, 0, "cualquier-cosa")
	require.NoError(t, err)
	assert.Equal(t, 50, reports.gotLimit, "limit cero toma el default")
	assert.Equal(t, repository.SortDueDateAsc, reports.gotSort, "sort desconocido cae en ascendente")
}

func TestListPastDue_OffsetMasAllaDelTotal(t *testing.T) {
	// Contrato definido: items vacío pero total intacto (no es error).
	reports := &fakeReportRepo{pastDueTotal: 7, pastDue: nil}
	uc := newInvoiceUC(t, reports, nil)
	asOf := date(2024, time.March, 1)

	out, err := uc.ListPastDue(context.Background(), &asOf, 50, 1000, "")
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, 7, out.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen mensual
// ──────────────────────────────────────────────────────────────────────────────

func TestMonthlySummary_MesInvalido(t *testing.T) {
	uc := newInvoiceUC(t, &fakeReportRepo{}, nil)

	for _, bad := range []string{"2024", "enero", "2024-13", "01-2024"} {
		_, err := uc.MonthlySummary(context.Background(), bad, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "month=%q", bad)
	}
}

func TestMonthlySummary_RangoDelMes(t *testing.T) {
	reports := &fakeReportRepo{monthly: repository.MonthlyTotals{
		SumBillTotal:  decimal.RequireFromString("150.00"),
		CountInvoices: 2,
		Currency:      "EUR",
	}}
	uc := newInvoiceUC(t, reports, nil)

	out, err := uc.MonthlySummary(context.Background(), "2024-12", "")
	require.NoError(t, err)

	assert.Equal(t, date(2024, time.December, 1), reports.gotFirst)
	assert.Equal(t, date(2025, time.January, 1), reports.gotNext, "el límite superior es exclusivo y cruza el año")
	assert.Equal(t, "EUR", out.Currency)
	assert.Equal(t, 2, out.CountInvoices)
	assert.True(t, out.SumBillTotal.Equal(decimal.RequireFromString("150.00")))
}

func TestMonthlySummary_MesSinFacturas(t *testing.T) {
	reports := &fakeReportRepo{monthly: repository.MonthlyTotals{
		SumBillTotal: decimal.Zero,
	}}
	uc := newInvoiceUC(t, reports, nil)

	out, err := uc.MonthlySummary(context.Background(), "2030-01", "")
	require.NoError(t, err)
	assert.True(t, out.SumBillTotal.IsZero())
	assert.Zero(t, out.CountInvoices)
	assert.Equal(t, "USD", out.Currency, "sin filas se reporta la moneda por defecto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Contactos
// ──────────────────────────────────────────────────────────────────────────────

func TestGetContact_SinCoincidenciasEsNotFound(t *testing.T) {
	uc := reporting.NewCustomerUseCase(&fakeCustomerRepo{}, &fakeReportRepo{contactTotal: 0})

	_, err := uc.GetContact(context.Background(), "Nadie", 10, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetContact_DevuelveCasingCanonicoYUltimaFactura(t *testing.T) {
	last := date(2024, time.January, 15)
	reports := &fakeReportRepo{
		contactTotal: 1,
		contacts: []repository.ContactRow{{
			CustomerName:    "Acme",
			ContactName:     "Jane",
			ContactEmail:    "jane@acme.test",
			LastInvoiceDate: &last,
		}},
	}
	uc := reporting.NewCustomerUseCase(&fakeCustomerRepo{}, reports)

	out, err := uc.GetContact(context.Background(), "ACME", 0, -1)
	require.NoError(t, err)

	assert.Equal(t, "Acme", out.CustomerName, "el casing canónico sale de la base, no del query")
	require.Len(t, out.Contacts, 1)
	assert.Equal(t, "2024-01-15", out.Contacts[0].LastSeenInvoiceDate)
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, 10, reports.gotLimit, "limit no positivo toma el default")
	assert.Equal(t, 0, reports.gotOffset)
}

func TestGetContact_ClienteSinFacturas(t *testing.T) {
	reports := &fakeReportRepo{
		contactTotal: 1,
		contacts: []repository.ContactRow{{
			CustomerName: "Globex",
			ContactName:  "Hank",
			// LastInvoiceDate nil: LEFT JOIN sin facturas
		}},
	}
	uc := reporting.NewCustomerUseCase(&fakeCustomerRepo{}, reports)

	out, err := uc.GetContact(context.Background(), "Globex", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, out.Contacts[0].LastSeenInvoiceDate)
}

func TestGetCustomerByID_NotFound(t *testing.T) {
	uc := reporting.NewCustomerUseCase(&fakeCustomerRepo{}, &fakeReportRepo{})

	_, err := uc.GetByID(99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
