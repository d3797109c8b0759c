package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/gigledger/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(cmd.Context(), db); err != nil {
		return err
	}

	slog.Info("schema applied", "database", cfg.DB.Name)

	return nil
}
