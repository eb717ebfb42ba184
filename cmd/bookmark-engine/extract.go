package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evanzant/bookmark-engine/internal/export"
	"github.com/evanzant/bookmark-engine/internal/outline"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract bookmark records from an outline document",
	Long: `Extract parses a markdown outline document into ordered bookmark records:
headings become the heading path, list items become entries, a leading
YYYY-MM-DD: token becomes the publication date, and the first inline link
becomes the record's URL. Output goes to stdout or --output as CSV, or as
JSON with --json.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("outline", "", "outline document to parse (required)")
	extractCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	extractCmd.Flags().Bool("json", false, "emit JSON instead of CSV")

	extractCmd.MarkFlagRequired("outline")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	outlinePath, _ := cmd.Flags().GetString("outline")
	outputPath, _ := cmd.Flags().GetString("output")
	asJSON, _ := cmd.Flags().GetBool("json")

	records, err := outline.Load(outlinePath)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Extracted %d records from %s\n", len(records), outlinePath)

	if asJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling records: %w", err)
		}
		if outputPath == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(outputPath, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outputPath, err)
		}
		return nil
	}

	if outputPath == "" {
		return export.WriteSpreadsheet(os.Stdout, records)
	}
	return export.WriteSpreadsheetFile(outputPath, records)
}
