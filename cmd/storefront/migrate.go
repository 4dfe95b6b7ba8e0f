package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations to DATABASE_DSN and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		if cfg.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required")
		}
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			return fmt.Errorf("db migrate: %w", err)
		}
		logger.Info("migrations applied")
		return nil
	},
}

