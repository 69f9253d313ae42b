package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/dompet-app/dompet/internal/config"
	"github.com/dompet-app/dompet/internal/database"
	"github.com/dompet-app/dompet/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	if err := database.Migrate(cfg.ConnectionString()); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	logger.Info("migrations applied", "database", cfg.DB.Name)
}
