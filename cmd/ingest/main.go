// ingest parsea el export AR (CSV) y lo carga en PostgreSQL.
//
// Uso: go run ./cmd/ingest [-file ruta.csv] [-dry-run]
// Sin flags usa AR_CSV_PATH de la configuración. Con -dry-run solo parsea y
// reporta estadísticas, sin tocar la base.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/jhoicas/unicorn-ar/internal/application/ingestion"
	"github.com/jhoicas/unicorn-ar/internal/infrastructure/postgres"
	"github.com/jhoicas/unicorn-ar/pkg/config"
	"github.com/jhoicas/unicorn-ar/pkg/logger"
)

func main() {
	file := flag.String("file", "", "ruta del CSV (default: AR_CSV_PATH)")
	dryRun := flag.Bool("dry-run", false, "solo parsear y reportar, sin cargar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	ctx := context.Background()

	var uc *ingestion.UseCase
	if *dryRun {
		// El dry-run no necesita base de datos
		uc = ingestion.NewUseCase(nil, log, cfg.Ingest.CSVPath, cfg.Ingest.Encoding)
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Error().Err(err).Msg("conexión a PostgreSQL")
			os.Exit(1)
		}
		defer pool.Close()

		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Error().Err(err).Msg("esquema")
			os.Exit(1)
		}
		uc = ingestion.NewUseCase(postgres.NewTxRunner(pool), log, cfg.Ingest.CSVPath, cfg.Ingest.Encoding)
	}

	if _, err := uc.Run(ctx, *file, *dryRun); err != nil {
		log.Error().Err(err).Msg("ingesta fallida")
		os.Exit(1)
	}
	if !*dryRun {
		log.Info().Msg("carga completa")
	}
}
