package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/dealboard/internal/config"
	"github.com/MrJamesThe3rd/dealboard/internal/database"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "dealctl",
	Short: "Operator tooling for the dealboard pipeline database",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// openDB loads .env and the environment config, then connects.
func openDB() (*config.Config, *sql.DB, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, nil, err
	}

	return cfg, db, nil
}
