package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evanzant/bookmark-engine/internal/export"
	"github.com/evanzant/bookmark-engine/internal/outline"
	"github.com/evanzant/bookmark-engine/internal/reconcile"
	"github.com/evanzant/bookmark-engine/internal/refdata"
	"github.com/evanzant/bookmark-engine/pkg/types"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Recover true URLs by joining an outline against a reference CSV",
	Long: `Reconcile extracts records from an outline document, replaces each record's
link with the canonical URL from the reference CSV when the titles match
exactly, and writes the result as a spreadsheet. Records with no match keep
their original link and are reported on stderr; they are never dropped.
The exit code is non-zero only for structurally bad input, not for
unresolved records.`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().String("outline", "", "outline document to parse (required)")
	reconcileCmd.Flags().String("refs", "", "reference CSV with title and url columns (required)")
	reconcileCmd.Flags().StringP("output", "o", "", "output spreadsheet (required)")
	reconcileCmd.Flags().Bool("normalized", false, "retry misses with normalized titles")
	reconcileCmd.Flags().String("report", "", "write a YAML run report to this file")

	reconcileCmd.MarkFlagRequired("outline")
	reconcileCmd.MarkFlagRequired("refs")
	reconcileCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	outlinePath, _ := cmd.Flags().GetString("outline")
	refsPath, _ := cmd.Flags().GetString("refs")
	outputPath, _ := cmd.Flags().GetString("output")
	normalized, _ := cmd.Flags().GetBool("normalized")
	reportPath, _ := cmd.Flags().GetString("report")

	records, err := outline.Load(outlinePath)
	if err != nil {
		return err
	}
	entries, err := refdata.LoadReference(refsPath)
	if err != nil {
		return err
	}
	idx, err := reconcile.NewIndex(entries)
	if err != nil {
		return err
	}

	summary := reconcile.Reconcile(records, idx, types.ReconcileConfig{Normalized: normalized})

	for _, title := range summary.Unresolved {
		fmt.Fprintf(os.Stderr, "unresolved: %s\n", title)
	}
	fmt.Fprintf(os.Stderr, "Reconciled %d of %d records (%d unresolved)\n",
		summary.Resolved, len(records), summary.Misses())

	if err := export.WriteSpreadsheetFile(outputPath, records); err != nil {
		return err
	}

	if reportPath != "" {
		report := export.ReconcileReport{
			Outline:    outlinePath,
			References: refsPath,
			Total:      len(records),
			Resolved:   summary.Resolved,
			Unresolved: summary.Unresolved,
		}
		if err := export.WriteReconcileReport(reportPath, report); err != nil {
			return err
		}
	}
	return nil
}
