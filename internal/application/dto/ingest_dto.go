package dto

import "github.com/jhoicas/unicorn-ar/internal/ingest"

// RunIngestRequest body para POST /api/ingest/run.
type RunIngestRequest struct {
	Path   string `json:"path,omitempty"` // vacío = ruta configurada
	DryRun bool   `json:"dry_run,omitempty"`
}

// RunIngestResponse resultado de una corrida de ingesta.
type RunIngestResponse struct {
	DryRun bool         `json:"dry_run"`
	Stats  ingest.Stats `json:"stats"`
}
