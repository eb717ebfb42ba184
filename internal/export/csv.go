// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes the pipeline's outputs: the fixed-column
// spreadsheet, the tag-grouped HTML fragment, and in-place insertion into
// an existing curated outline document. Every writer produces a fresh file
// at the operator-supplied path; a write error aborts so a partial file is
// never presented as success.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/evanzant/bookmark-engine/pkg/types"
)

// spreadsheetHeader is the fixed column order of the reconciled output.
var spreadsheetHeader = []string{"title", "link", "published", "word_count", "heading_path", "status"}

// enrichedHeader is the column order of the enriched output, carrying the
// per-record extraction statuses alongside the values.
var enrichedHeader = []string{"title", "url", "pub_date", "date_status", "wordcount", "wc_status", "wc_method"}

// WriteSpreadsheet writes records in the fixed spreadsheet layout. The
// status column holds the link's provenance (reference, outline, none).
func WriteSpreadsheet(w io.Writer, records []types.Bookmark) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(spreadsheetHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Title,
			rec.Link,
			rec.Published,
			intField(rec.WordCount),
			strings.Join(rec.HeadingPath, " > "),
			string(rec.Source),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record %q: %w", rec.Title, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEnriched writes records with the enrichment status columns.
func WriteEnriched(w io.Writer, records []types.Bookmark) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(enrichedHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Title,
			rec.Link,
			rec.Published,
			rec.DateStatus,
			intField(rec.WordCount),
			rec.CountStatus,
			rec.CountMethod,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record %q: %w", rec.Title, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSpreadsheetFile writes the spreadsheet to path, overwriting any
// existing file.
func WriteSpreadsheetFile(path string, records []types.Bookmark) error {
	return writeFile(path, records, WriteSpreadsheet)
}

// WriteEnrichedFile writes the enriched spreadsheet to path, overwriting
// any existing file.
func WriteEnrichedFile(path string, records []types.Bookmark) error {
	return writeFile(path, records, WriteEnriched)
}

func writeFile(path string, records []types.Bookmark, write func(io.Writer, []types.Bookmark) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f, records); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// intField renders n for a CSV cell, with zero meaning "unknown" and
// rendered empty.
func intField(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
