package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/dealboard/internal/deal"
	dealStore "github.com/MrJamesThe3rd/dealboard/internal/deal/store"
	"github.com/MrJamesThe3rd/dealboard/internal/document"
	documentStore "github.com/MrJamesThe3rd/dealboard/internal/document/store"
	"github.com/MrJamesThe3rd/dealboard/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <deal-id> <dir>",
	Short: "Download a deal's data room into a directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid deal id: %w", err)
		}

		cfg, db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		docs := document.NewService(documentStore.New(db))
		deals := deal.NewService(dealStore.New(db), docs)

		bundle, err := export.NewService(docs, deals, cfg.Export.Token).Export(cmd.Context(), id, args[1])
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), export.Summary(bundle))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
