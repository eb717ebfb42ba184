// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package refdata loads the flat CSV exports the pipeline joins against:
// the authoritative title→link reference table (diigo-era) and the full
// raindrop export rows (tags, note fields, timestamps).
package refdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/evanzant/bookmark-engine/pkg/types"
)

// urlColumnScanRows bounds how many rows the fallback URL-column detector
// inspects before giving up.
const urlColumnScanRows = 50

// LoadReference reads the reference table from path. It fails loudly when
// the table is unreadable, empty, or missing the title/URL columns; a
// missing field in an individual row is tolerated as an absent value.
// Duplicate titles keep the first occurrence.
func LoadReference(path string) ([]types.ReferenceEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference table %s: %w", path, err)
	}
	defer f.Close()

	header, rows, err := readTable(f)
	if err != nil {
		return nil, fmt.Errorf("reading reference table %s: %w", path, err)
	}

	titleCol := findColumn(header, "title")
	if titleCol < 0 {
		return nil, fmt.Errorf("reference table %s has no title column", path)
	}
	urlCol := DetectURLColumn(header, rows)
	if urlCol < 0 {
		return nil, fmt.Errorf("reference table %s has no url column", path)
	}

	seen := make(map[string]bool)
	var entries []types.ReferenceEntry
	for _, row := range rows {
		title := strings.TrimSpace(field(row, titleCol))
		link := strings.TrimSpace(field(row, urlCol))
		if title == "" || link == "" || seen[title] {
			continue
		}
		seen[title] = true
		entries = append(entries, types.ReferenceEntry{Title: title, CanonicalLink: link})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("reference table %s contains no usable rows", path)
	}
	return entries, nil
}

// LoadRaindrop reads a raindrop export from path into bookmark records.
// Recognized columns: title, url/link, tags, note, excerpt, created.
// The note field may carry "pub:YYYY-MM-DD" and "wordcount:NNN" tokens
// from earlier enrichment runs; both are promoted onto the record.
func LoadRaindrop(path string) ([]types.Bookmark, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening raindrop export %s: %w", path, err)
	}
	defer f.Close()

	header, rows, err := readTable(f)
	if err != nil {
		return nil, fmt.Errorf("reading raindrop export %s: %w", path, err)
	}

	titleCol := findColumn(header, "title")
	urlCol := DetectURLColumn(header, rows)
	if titleCol < 0 || urlCol < 0 {
		return nil, fmt.Errorf("raindrop export %s lacks title/url columns", path)
	}
	tagsCol := findColumn(header, "tags")
	noteCol := findColumn(header, "note")
	excerptCol := findColumn(header, "excerpt")
	createdCol := findColumn(header, "created")

	var records []types.Bookmark
	for _, row := range rows {
		rec := types.Bookmark{
			Title:   strings.TrimSpace(field(row, titleCol)),
			Link:    strings.TrimSpace(field(row, urlCol)),
			Note:    strings.TrimSpace(field(row, noteCol)),
			Excerpt: strings.TrimSpace(field(row, excerptCol)),
			Tags:    SplitTags(field(row, tagsCol)),
			Source:  types.SourceReference,
		}
		if rec.Title == "" && rec.Link == "" {
			continue
		}
		if rec.Link == "" {
			rec.Source = types.SourceNone
		}
		rec.Published = NotePubDate(rec.Note)
		rec.WordCount = NoteWordCount(rec.Note)
		if created := field(row, createdCol); len(created) >= 10 {
			rec.Created = created[:10]
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("raindrop export %s contains no usable rows", path)
	}
	return records, nil
}

// readTable reads a header row plus all data rows. Rows with a deviant
// field count are kept; missing trailing fields read as absent values.
func readTable(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) < 2 {
		return nil, nil, fmt.Errorf("table is empty (need a header row and at least one data row)")
	}
	return all[0], all[1:], nil
}

// findColumn returns the index of the named header column, matched
// case-insensitively, or -1.
func findColumn(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// DetectURLColumn locates the link column: a header named url or link in
// any casing, else the first column whose early rows contain http(s)
// values. Returns -1 when nothing qualifies.
func DetectURLColumn(header []string, rows [][]string) int {
	for _, name := range []string{"url", "link"} {
		if i := findColumn(header, name); i >= 0 {
			return i
		}
	}
	limit := len(rows)
	if limit > urlColumnScanRows {
		limit = urlColumnScanRows
	}
	for col := range header {
		for _, row := range rows[:limit] {
			if strings.HasPrefix(strings.TrimSpace(field(row, col)), "http") {
				return col
			}
		}
	}
	return -1
}

// SplitTags splits a raindrop tag list on commas or semicolons.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var tags []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// notePubDate and noteWordCount tokens as written by earlier runs.
var (
	pubToken       = "pub:"
	wordcountToken = "wordcount:"
)

// NotePubDate extracts a "pub:YYYY-MM-DD" token from a note field.
func NotePubDate(note string) string {
	i := strings.Index(note, pubToken)
	if i < 0 {
		return ""
	}
	rest := strings.TrimSpace(note[i+len(pubToken):])
	if len(rest) < 10 {
		return ""
	}
	date := rest[:10]
	if !looksLikeDate(date) {
		return ""
	}
	return date
}

// NoteWordCount extracts a "wordcount:NNN" token from a note field. The
// digits may contain thousands separators ("wordcount:1,234").
func NoteWordCount(note string) int {
	i := strings.Index(note, wordcountToken)
	if i < 0 {
		return 0
	}
	rest := note[i+len(wordcountToken):]
	var digits strings.Builder
	for _, r := range rest {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
			continue
		}
		if r == ',' && digits.Len() > 0 {
			continue
		}
		break
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

func looksLikeDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// field returns row[i] or "" when the row is short or the column is absent.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
