// Command debt-backup copies the primary ledger document to the backup bin.
// It is a one-shot job meant to run from cron; scheduling is external.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/furiksayram-commits/debt-tracker/internal/adapters/storage/jsonbin"
	"github.com/furiksayram-commits/debt-tracker/internal/platform/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.JSONBinBinID == "" || cfg.JSONBinBackupBinID == "" {
		logger.Error("JSONBIN_BIN_ID and JSONBIN_BACKUP_BIN_ID must both be set")
		os.Exit(1)
	}

	primary := jsonbin.NewStore(jsonbin.Config{
		BaseURL: cfg.JSONBinBaseURL,
		BinID:   cfg.JSONBinBinID,
		APIKey:  cfg.JSONBinAPIKey,
		Timeout: cfg.JSONBinTimeout,
	})
	backup := jsonbin.NewStore(jsonbin.Config{
		BaseURL: cfg.JSONBinBaseURL,
		BinID:   cfg.JSONBinBackupBinID,
		APIKey:  cfg.JSONBinAPIKey,
		Timeout: cfg.JSONBinTimeout,
	})

	ctx := context.Background()

	logger.Info("Starting ledger backup", slog.String("primary_bin", cfg.JSONBinBinID), slog.String("backup_bin", cfg.JSONBinBackupBinID))

	debtors, err := primary.Load(ctx)
	if err != nil {
		logger.Error("Failed to read primary bin", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := backup.Save(ctx, debtors); err != nil {
		logger.Error("Failed to write backup bin", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Ledger backup completed", slog.Int("debtors", len(debtors)))
}
