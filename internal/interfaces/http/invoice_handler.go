package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/unicorn-ar/internal/application/dto"
	"github.com/jhoicas/unicorn-ar/internal/application/reporting"
	"github.com/jhoicas/unicorn-ar/internal/domain"
)

// InvoiceHandler maneja las peticiones HTTP de facturas (solo lectura).
type InvoiceHandler struct {
	uc *reporting.InvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *reporting.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// ListPastDue GET /api/invoices/past-due?as_of=2024-03-01&limit=50&offset=0&sort=due_date.asc
func (h *InvoiceHandler) ListPastDue(c *fiber.Ctx) error {
	var asOf *time.Time
	if raw := c.Query("as_of"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "as_of debe ser YYYY-MM-DD"})
		}
		asOf = &t
	}
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	sort := c.Query("sort", "due_date.asc")

	out, err := h.uc.ListPastDue(c.Context(), asOf, limit, offset, sort)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// MonthlySummary GET /api/invoices/summary/month?month=2024-01&customer_name=Acme
func (h *InvoiceHandler) MonthlySummary(c *fiber.Ctx) error {
	month := c.Query("month")
	if month == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month es requerido (YYYY-MM)"})
	}
	out, err := h.uc.MonthlySummary(c.Context(), month, c.Query("customer_name"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month debe ser YYYY-MM"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByNumber GET /api/invoices/:invoice_number
func (h *InvoiceHandler) GetByNumber(c *fiber.Ctx) error {
	out, err := h.uc.GetByNumber(c.Params("invoice_number"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
