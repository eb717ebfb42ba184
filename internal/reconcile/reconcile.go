// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reconcile joins outline records against the reference table,
// replacing each record's broken or internal link with the authoritative
// URL. Matching is by title: case-sensitive exact match, first occurrence
// wins. An optional normalized pass catches records whose titles differ
// only in casing, punctuation, or whitespace. Misses are reported, never
// fatal; reconciliation only errors when its inputs are structurally
// unusable.
package reconcile

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/evanzant/bookmark-engine/pkg/types"
)

// Index holds the title→link lookup tables built from the reference
// entries. Both tables keep the first occurrence of a title.
type Index struct {
	exact      map[string]string
	normalized map[string]string
}

// NewIndex builds lookup tables from reference entries in table order, so
// the first-wins tie-break matches the source CSV.
func NewIndex(entries []types.ReferenceEntry) (*Index, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("reference table is empty")
	}
	idx := &Index{
		exact:      make(map[string]string, len(entries)),
		normalized: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if _, ok := idx.exact[e.Title]; !ok {
			idx.exact[e.Title] = e.CanonicalLink
		}
		key := NormalizeTitle(e.Title)
		if key == "" {
			continue
		}
		if _, ok := idx.normalized[key]; !ok {
			idx.normalized[key] = e.CanonicalLink
		}
	}
	return idx, nil
}

// Lookup returns the canonical link for a title, trying the exact table
// and, when enabled, the normalized table.
func (idx *Index) Lookup(title string, normalized bool) (string, bool) {
	if link, ok := idx.exact[title]; ok {
		return link, true
	}
	if !normalized {
		return "", false
	}
	link, ok := idx.normalized[NormalizeTitle(title)]
	return link, ok
}

// Summary reports the outcome of a reconciliation run.
type Summary struct {
	Resolved   int      `json:"resolved" yaml:"resolved"`
	Unresolved []string `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
}

// Misses returns the number of unresolved records.
func (s Summary) Misses() int { return len(s.Unresolved) }

// Reconcile overwrites each record's link with its reference match,
// preserving record order. Records with no match keep their original link
// and appear in the summary's unresolved list instead of being dropped.
// The result is a pure function of (records, index, cfg): no clock, no
// randomness.
func Reconcile(records []types.Bookmark, idx *Index, cfg types.ReconcileConfig) Summary {
	var summary Summary
	for i := range records {
		link, ok := idx.Lookup(records[i].Title, cfg.Normalized)
		if !ok {
			summary.Unresolved = append(summary.Unresolved, records[i].Title)
			continue
		}
		records[i].Link = link
		records[i].Source = types.SourceReference
		summary.Resolved++
	}
	return summary
}

// NormalizeTitle lowercases the title, strips everything but letters,
// digits, and spaces, and collapses whitespace.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
