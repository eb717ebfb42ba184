package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evanzant/bookmark-engine/internal/export"
	"github.com/evanzant/bookmark-engine/internal/refdata"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write curated outputs from a raindrop CSV export",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Normalize a raindrop export into the fixed-column spreadsheet",
	RunE:  runExportCSV,
}

var exportHTMLCmd = &cobra.Command{
	Use:   "html",
	Short: "Render records as a tag-grouped HTML fragment or insert into an outline",
	Long: `Export html renders records grouped by their outl: section tags, either as
a standalone fragment (stdout or --output) or inserted in place into an
existing curated outline document (--into). In-place insertion skips URLs
already present in the target subsection, keeps each subsection in
descending date order, and refreshes the per-section and header article
counts. --dry-run reports placements without writing.`,
	RunE: runExportHTML,
}

func init() {
	exportCSVCmd.Flags().String("csv", "", "raindrop CSV export (required)")
	exportCSVCmd.Flags().StringP("output", "o", "", "output spreadsheet (required)")
	exportCSVCmd.MarkFlagRequired("csv")
	exportCSVCmd.MarkFlagRequired("output")

	exportHTMLCmd.Flags().String("csv", "", "raindrop CSV export (required)")
	exportHTMLCmd.Flags().StringP("output", "o", "", "fragment output file (default stdout)")
	exportHTMLCmd.Flags().String("into", "", "existing outline document to update in place")
	exportHTMLCmd.Flags().Bool("dry-run", false, "report placements without writing (with --into)")
	exportHTMLCmd.MarkFlagRequired("csv")

	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportHTMLCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	csvPath, _ := cmd.Flags().GetString("csv")
	outputPath, _ := cmd.Flags().GetString("output")

	records, err := refdata.LoadRaindrop(csvPath)
	if err != nil {
		return err
	}
	return export.WriteSpreadsheetFile(outputPath, records)
}

func runExportHTML(cmd *cobra.Command, args []string) error {
	csvPath, _ := cmd.Flags().GetString("csv")
	outputPath, _ := cmd.Flags().GetString("output")
	intoPath, _ := cmd.Flags().GetString("into")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if outputPath != "" && intoPath != "" {
		return fmt.Errorf("--output and --into are mutually exclusive")
	}

	records, err := refdata.LoadRaindrop(csvPath)
	if err != nil {
		return err
	}

	if intoPath != "" {
		_, err := export.InsertFile(intoPath, records, dryRun, os.Stdout)
		return err
	}

	if outputPath == "" {
		_, err := export.RenderFragment(os.Stdout, records, os.Stderr)
		return err
	}
	_, err = export.RenderFragmentFile(outputPath, records, os.Stderr)
	return err
}
