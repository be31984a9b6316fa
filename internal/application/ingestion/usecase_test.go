package ingestion_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/unicorn-ar/internal/application/ingestion"
	"github.com/jhoicas/unicorn-ar/internal/domain"
	"github.com/jhoicas/unicorn-ar/internal/domain/entity"
	"github.com/jhoicas/unicorn-ar/internal/domain/repository"
	"github.com/jhoicas/unicorn-ar/pkg/logger"
)

const arHeader = "CustomerName,ContactName,ContactPhone,ContactEmail,InvoiceNumber,InvoiceDate,DueDate,CustomerPoNumber,BillTotal,Applied,Status,Currency,CustomerTerms"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes: TxRunner y repos en memoria que simulan el replace + upsert
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	customers []*entity.Customer
	invoices  map[string]*entity.Invoice
	begins    int
}

type memTxRunner struct{ store *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	r.store.begins++
	return fn(&memCustomerRepo{store: r.store}, &memInvoiceRepo{store: r.store})
}

type memCustomerRepo struct{ store *memStore }

func (r *memCustomerRepo) ReplaceAll(customers []*entity.Customer) error {
	r.store.customers = customers
	return nil
}

func (r *memCustomerRepo) GetByID(id int) (*entity.Customer, error) {
	for _, c := range r.store.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memCustomerRepo) List() ([]*entity.Customer, error) { return r.store.customers, nil }

type memInvoiceRepo struct{ store *memStore }

func (r *memInvoiceRepo) Upsert(inv *entity.Invoice) error {
	if r.store.invoices == nil {
		r.store.invoices = make(map[string]*entity.Invoice)
	}
	r.store.invoices[inv.InvoiceNumber] = inv
	return nil
}

func (r *memInvoiceRepo) GetByNumber(n string) (*entity.Invoice, error) {
	if inv, ok := r.store.invoices[n]; ok {
		return inv, nil
	}
	return nil, domain.ErrNotFound
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ar.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// ──────────────────────────────────────────────────────────────────────────────

func TestRun_CargaAtomicaYUltimoDuplicadoGana(t *testing.T) {
	csv := arHeader + "\n" +
		`Acme,Jane,,,INV-1,01/15/24,,,100.00,40.00,Open,USD,Net 30` + "\n" +
		`Acme,,,,INV-1,01/16/24,,,200.00,0,Open,USD,Net 30` + "\n" +
		`Globex,,,,INV-2,01/17/24,,,50.00,0,Open,USD,Net 15` + "\n"
	path := writeCSV(t, csv)

	store := &memStore{}
	uc := ingestion.NewUseCase(&memTxRunner{store: store}, testLogger(), path, "utf-8")

	stats, err := uc.Run(context.Background(), "", false)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 1, stats.DuplicateInvoices)
	assert.Equal(t, 1, store.begins, "toda la carga pasa por una sola transacción")

	require.Len(t, store.customers, 2)
	require.Len(t, store.invoices, 2)
	assert.True(t, store.invoices["INV-1"].BillTotal.Equal(decimal.RequireFromString("200.00")),
		"con InvoiceNumber duplicado persiste la última fila")
}

func TestRun_EsIdempotente(t *testing.T) {
	csv := arHeader + "\n" +
		`Acme,Jane,,,INV-1,01/15/24,,,100.00,40.00,Open,USD,Net 30` + "\n"
	path := writeCSV(t, csv)

	store := &memStore{}
	uc := ingestion.NewUseCase(&memTxRunner{store: store}, testLogger(), path, "utf-8")

	_, err := uc.Run(context.Background(), "", false)
	require.NoError(t, err)
	first := *store.invoices["INV-1"]

	_, err = uc.Run(context.Background(), "", false)
	require.NoError(t, err)

	require.Len(t, store.invoices, 1, "re-ingerir el mismo archivo no duplica facturas")
	assert.Equal(t, first.CustomerID, store.invoices["INV-1"].CustomerID)
	assert.True(t, first.BillTotal.Equal(store.invoices["INV-1"].BillTotal))
	require.Len(t, store.customers, 1)
	assert.Equal(t, 1, store.customers[0].ID, "los IDs se reasignan igual en orden de aparición")
}

func TestRun_DryRunNoTocaLaBase(t *testing.T) {
	csv := arHeader + "\n" +
		`Acme,,,,INV-1,01/15/24,,,100.00,0,Open,USD,Net 30` + "\n"
	path := writeCSV(t, csv)

	store := &memStore{}
	uc := ingestion.NewUseCase(&memTxRunner{store: store}, testLogger(), path, "utf-8")

	stats, err := uc.Run(context.Background(), "", true)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Invoices)
	assert.Zero(t, store.begins)
	assert.Empty(t, store.invoices)
}

func TestRun_ArchivoInexistente(t *testing.T) {
	uc := ingestion.NewUseCase(&memTxRunner{store: &memStore{}}, testLogger(), "/no/existe.csv", "utf-8")

	_, err := uc.Run(context.Background(), "", false)
	require.Error(t, err)
}

func TestRun_EncodingLatin1(t *testing.T) {
	// "Muñoz" con ñ en Windows-1252 (0xF1), ilegible como UTF-8
	raw := arHeader + "\n" +
		"Mu\xf1oz,,,,INV-1,01/15/24,,,10.00,0,Open,USD,Net 30\n"
	path := writeCSV(t, raw)

	store := &memStore{}
	uc := ingestion.NewUseCase(&memTxRunner{store: store}, testLogger(), path, "latin1")

	_, err := uc.Run(context.Background(), "", false)
	require.NoError(t, err)
	require.Len(t, store.customers, 1)
	assert.Equal(t, "Muñoz", store.customers[0].Name)
}
