package ingestion

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/unicorn-ar/internal/domain/entity"
	"github.com/jhoicas/unicorn-ar/internal/domain/repository"
	"github.com/jhoicas/unicorn-ar/internal/ingest"
	"github.com/jhoicas/unicorn-ar/pkg/logger"
)

// TxRunner ejecuta la carga completa dentro de una transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// UseCase orquesta parseo del CSV y carga atómica en la base.
// Una sola corrida activa a la vez: la ingesta es secuencial por diseño
// (el orden de filas define IDs y merge de contactos) y el mutex evita que
// dos triggers concurrentes se pisen.
type UseCase struct {
	tx       TxRunner
	log      *logger.Logger
	csvPath  string
	encoding string
	mu       sync.Mutex
}

// NewUseCase construye el caso de uso de ingesta.
func NewUseCase(tx TxRunner, log *logger.Logger, csvPath, encoding string) *UseCase {
	return &UseCase{tx: tx, log: log, csvPath: csvPath, encoding: encoding}
}

// Parse normaliza el CSV sin tocar la base (equivale a una corrida dry-run).
func (uc *UseCase) Parse(path string) ([]*entity.Customer, []*entity.Invoice, ingest.Stats, error) {
	if path == "" {
		path = uc.csvPath
	}
	return ingest.ParseFile(path, uc.encoding)
}

// Run parsea el CSV y, si dryRun es falso, carga el resultado. La carga es un
// replace total de customers más upsert de invoices por invoice_number, todo
// en una transacción: o se confirma completa o no queda nada.
func (uc *UseCase) Run(ctx context.Context, path string, dryRun bool) (ingest.Stats, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	customers, invoices, stats, err := uc.Parse(path)
	if err != nil {
		return ingest.Stats{}, err
	}
	uc.logStats(stats)

	if dryRun {
		return stats, nil
	}
	if err := uc.Load(ctx, customers, invoices); err != nil {
		return stats, err
	}
	return stats, nil
}

// Load persiste una corrida ya normalizada (replace + upsert, atómico).
func (uc *UseCase) Load(ctx context.Context, customers []*entity.Customer, invoices []*entity.Invoice) error {
	err := uc.tx.Run(ctx, func(
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		if err := customerRepo.ReplaceAll(customers); err != nil {
			return err
		}
		for _, inv := range invoices {
			if err := invoiceRepo.Upsert(inv); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cargar ingesta: %w", err)
	}
	return nil
}

// logStats reporta la corrida: totales en info, anomalías en warn.
func (uc *UseCase) logStats(stats ingest.Stats) {
	uc.log.Info().
		Str("run_id", stats.RunID).
		Int("rows", stats.Rows).
		Int("customers", stats.Customers).
		Int("invoices", stats.Invoices).
		Int("errors", stats.Errors).
		Int("duplicates", stats.DuplicateInvoices).
		Msg("corrida de ingesta")
	for _, d := range stats.DuplicateSamples {
		uc.log.Warn().Str("run_id", stats.RunID).Msg(d)
	}
	for _, e := range stats.ErrorSamples {
		uc.log.Warn().
			Str("run_id", stats.RunID).
			Int("row", e.RowNumber).
			Str("error", e.Err).
			Msg("fila con error")
	}
}
