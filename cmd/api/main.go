package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"goinfer/adapters/postgres"
	"goinfer/app"
	"goinfer/internal"
	"goinfer/internal/config"
	"goinfer/internal/testkit"
	"goinfer/ports"
	"goinfer/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	var ledger ports.RunLedger
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		ledger, err = postgres.NewRunLedger(db)
		if err != nil {
			log.Fatalf("failed to initialize run ledger: %v", err)
		}
		logger.Info("run ledger: postgres")
	} else {
		ledger = testkit.NewInMemoryRunLedger()
		logger.Info("run ledger: in-memory (set DATABASE_URL to persist runs)")
	}

	sweeps := app.NewSweepService(ledger, logger, cfg.Sweep.MaxConcurrent)

	server := ui.NewApp(ui.Config{
		Port:            cfg.Server.Port,
		DataFile:        cfg.Data.File,
		TimestampColumn: cfg.Data.TimestampColumn,
		TimestampLayout: cfg.Data.TimestampLayout,
	}, sweeps, ledger, logger)

	if err := server.Serve(cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
