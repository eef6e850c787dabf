package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/dealboard/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(cmd.Context(), db); err != nil {
			return err
		}

		slog.Info("schema applied")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
