package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/unicorn-ar/internal/application/dto"
	"github.com/jhoicas/unicorn-ar/internal/application/ingestion"
)

// IngestHandler dispara corridas de ingesta desde la API (uso operativo).
type IngestHandler struct {
	uc *ingestion.UseCase
}

// NewIngestHandler construye el handler.
func NewIngestHandler(uc *ingestion.UseCase) *IngestHandler {
	return &IngestHandler{uc: uc}
}

// Run POST /api/ingest/run
// Body: {"path": "...", "dry_run": false}. path vacío usa la ruta configurada.
func (h *IngestHandler) Run(c *fiber.Ctx) error {
	var in dto.RunIngestRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	stats, err := h.uc.Run(c.Context(), in.Path, in.DryRun)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INGEST_FAILED", Message: err.Error()})
	}
	return c.JSON(dto.RunIngestResponse{DryRun: in.DryRun, Stats: stats})
}
