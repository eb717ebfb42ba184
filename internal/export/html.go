// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"html"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/evanzant/bookmark-engine/internal/tags"
	"github.com/evanzant/bookmark-engine/pkg/types"
)

// FragmentSummary reports what the fragment renderer did with its input.
type FragmentSummary struct {
	Rendered int
	Untagged int
	Sections int
}

// RenderFragment writes records as a tag-grouped HTML fragment in the
// curated outline's markup: one <details class="sub"> per subsection tag,
// ordered by section number then letter, records date-descending within
// each group with undated records last. Records without a section tag are
// reported to report and skipped.
func RenderFragment(w io.Writer, records []types.Bookmark, report io.Writer) (FragmentSummary, error) {
	var summary FragmentSummary

	groups := map[string][]types.Bookmark{}
	byID := map[string]tags.SectionTag{}
	for _, rec := range records {
		tag, ok := tags.First(rec.Tags)
		if !ok {
			fmt.Fprintf(report, "warning: no section tag for: %s\n", rec.Title)
			summary.Untagged++
			continue
		}
		id := tag.SubsectionID()
		groups[id] = append(groups[id], rec)
		byID[id] = tag
		summary.Rendered++
	}

	ordered := make([]tags.SectionTag, 0, len(byID))
	for _, tag := range byID {
		ordered = append(ordered, tag)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Less(ordered[j]) })
	summary.Sections = len(ordered)

	for _, tag := range ordered {
		group := groups[tag.SubsectionID()]
		sort.SliceStable(group, func(i, j int) bool {
			return dateAfter(group[i].Published, group[j].Published)
		})

		if _, err := fmt.Fprintf(w, "<details class=\"sub\" id=%q>\n<summary>%s</summary>\n<div class=\"sub-body\">\n<ul class=\"arts\">\n",
			tag.SubsectionID(), html.EscapeString(tag.Label())); err != nil {
			return summary, fmt.Errorf("writing fragment: %w", err)
		}
		for _, rec := range group {
			if _, err := fmt.Fprintf(w, "%s\n", articleItem(rec)); err != nil {
				return summary, fmt.Errorf("writing fragment: %w", err)
			}
		}
		if _, err := fmt.Fprint(w, "</ul>\n</div>\n</details>\n"); err != nil {
			return summary, fmt.Errorf("writing fragment: %w", err)
		}
	}

	fmt.Fprintf(report, "Rendered %d records into %d subsections (%d untagged skipped)\n",
		summary.Rendered, summary.Sections, summary.Untagged)
	return summary, nil
}

// RenderFragmentFile writes the fragment to path, overwriting any existing
// file.
func RenderFragmentFile(path string, records []types.Bookmark, report io.Writer) (FragmentSummary, error) {
	f, err := os.Create(path)
	if err != nil {
		return FragmentSummary{}, fmt.Errorf("creating %s: %w", path, err)
	}
	summary, err := RenderFragment(f, records, report)
	if err != nil {
		f.Close()
		return summary, err
	}
	if err := f.Close(); err != nil {
		return summary, fmt.Errorf("closing %s: %w", path, err)
	}
	return summary, nil
}

// articleItem renders one record in the outline's <li> markup. The date
// badge is always present (empty when unknown); the word-count badge only
// when a count exists.
func articleItem(rec types.Bookmark) string {
	item := fmt.Sprintf(`<li><a href=%q target="_blank" rel="noopener">%s</a><span class="meta"><span class="bd bd-d">%s</span>`,
		rec.Link, html.EscapeString(rec.Title), html.EscapeString(rec.Published))
	if rec.WordCount > 0 {
		item += fmt.Sprintf(`<span class="bd bd-w">%s wds</span>`, commaGroup(rec.WordCount))
	}
	return item + `</span></li>`
}

// dateAfter orders YYYY-MM-DD strings descending with empty (undated) last.
func dateAfter(a, b string) bool {
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}
	return a > b
}

// commaGroup formats n with thousands separators ("12345" → "12,345").
func commaGroup(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
