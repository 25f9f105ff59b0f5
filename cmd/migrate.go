package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	config "pet-sitter.com/pet-sitter/internal/configs"
	"pet-sitter.com/pet-sitter/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		slog.SetDefault(logger.New(cfg.AppEnv, cfg.LogLevel))

		db := config.NewDatabase(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err := config.Migrate(db); err != nil {
			return err
		}

		slog.Info("database schema is up to date", "driver", cfg.DatabaseDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
