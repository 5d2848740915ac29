package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmynk/rentkeeper/internal/storage/sqlite"
)

func newMigrateCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			// Opening the store applies the schema.
			store, err := sqlite.New(cfg.DBPath)
			if err != nil {
				return err
			}
			slog.Info("Database schema is up to date", "database", cfg.DBPath)
			return store.Close()
		},
	}
}
