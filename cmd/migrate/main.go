package main

// Create the kv_entries table used by STORE_BACKEND=postgres:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	"internship-tracker/internal/shared/config"
	"internship-tracker/internal/shared/storage/db"
	"internship-tracker/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Configure(os.Stdout, cfg.LogLevel)
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer sqlDB.Close()

	names, err := db.MigrationNames()
	if err != nil {
		telemetry.Error("migrate.list_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", map[string]any{"migrations": names})
}
