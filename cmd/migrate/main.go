package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"telemed-booking/internal/handler/middleware"
	"telemed-booking/internal/infra/db"
	"telemed-booking/internal/pkg/config"
)

func main() {
	dir := flag.String("dir", "migrations", "directory holding the migration files and atlas.sum")
	timeout := flag.Duration("timeout", 2*time.Minute, "upper bound for the whole migration run")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	middleware.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := db.Migrate(ctx, *dir, cfg.DB.BuildDSN()); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}
