package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/unicorn-ar/internal/application/ingestion"
	"github.com/jhoicas/unicorn-ar/internal/application/reporting"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *reporting.CustomerUseCase
	InvoiceUC  *reporting.InvoiceUseCase
	IngestUC   *ingestion.UseCase
	JWTSecret  string // vacío = API abierta
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/contact", customerHandler.GetContact) // antes de /:id para no capturar "contact"
	customers.Get("/:id", customerHandler.GetByID)

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Get("/past-due", invoiceHandler.ListPastDue)
	invoices.Get("/summary/month", invoiceHandler.MonthlySummary)
	invoices.Get("/:invoice_number", invoiceHandler.GetByNumber)

	// Ingesta operativa
	ingest := api.Group("/ingest")
	ingestHandler := NewIngestHandler(deps.IngestUC)
	ingest.Post("/run", ingestHandler.Run)
}
