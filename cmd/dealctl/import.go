package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/dealboard/internal/deal"
	dealStore "github.com/MrJamesThe3rd/dealboard/internal/deal/store"
	"github.com/MrJamesThe3rd/dealboard/internal/document"
	documentStore "github.com/MrJamesThe3rd/dealboard/internal/document/store"
	"github.com/MrJamesThe3rd/dealboard/internal/importer"
)

var (
	importFormat string
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import prospective deals from a spreadsheet export",
	Long: `Reads a CSV export with company, revenue and owner columns (priority, SDE and
description optional). Encoding and delimiter are detected. Companies already in
the pipeline are skipped; every new deal starts in onboarding.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		if importDryRun {
			params, err := importer.NewService(nil).Parse(importer.Format(importFormat), f)
			if err != nil {
				return err
			}

			for _, p := range params {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.CompanyName, p.Revenue.StringFixed(2), p.Owner)
			}

			return nil
		}

		_, db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		deals := deal.NewService(dealStore.New(db), document.NewService(documentStore.New(db)))

		res, err := importer.NewService(deals).Import(cmd.Context(), importer.Format(importFormat), f)
		if err != nil {
			return err
		}

		for _, p := range res.Skipped {
			fmt.Fprintf(cmd.OutOrStdout(), "skipped %s (already in pipeline)\n", p.CompanyName)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "imported %d deals\n", len(res.Imported))

		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFormat, "format", "f", string(importer.FormatSheet), "Spreadsheet format")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and print rows without writing")
	rootCmd.AddCommand(importCmd)
}
