// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/evanzant/bookmark-engine/internal/tags"
	"github.com/evanzant/bookmark-engine/pkg/types"
)

// InsertSummary reports the outcome of an in-place insertion run.
type InsertSummary struct {
	Added   int
	Skipped int
}

var articleTotalPattern = regexp.MustCompile(`\d+ articles`)

// InsertFile inserts records into the curated outline document at path,
// writing the updated document back in place. When dryRun is set the
// placements are reported but the file is left untouched.
func InsertFile(path string, records []types.Bookmark, dryRun bool, report io.Writer) (InsertSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return InsertSummary{}, fmt.Errorf("opening outline %s: %w", path, err)
	}
	doc, err := goquery.NewDocumentFromReader(f)
	f.Close()
	if err != nil {
		return InsertSummary{}, fmt.Errorf("parsing outline %s: %w", path, err)
	}

	summary := Insert(doc, records, report)
	if dryRun {
		fmt.Fprintf(report, "dry run: %s not modified\n", path)
		return summary, nil
	}

	out, err := doc.Html()
	if err != nil {
		return summary, fmt.Errorf("rendering outline: %w", err)
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return summary, fmt.Errorf("writing outline %s: %w", path, err)
	}
	return summary, nil
}

// Insert places each tagged record into the <details> subsection whose id
// matches its section tag, in descending date order with undated records
// last. A URL already present in the target subsection is skipped, as is
// any record whose tag names a subsection the document does not have.
// Modified section counts and the header total are refreshed.
func Insert(doc *goquery.Document, records []types.Bookmark, report io.Writer) InsertSummary {
	var summary InsertSummary
	modified := map[string]bool{}

	for _, rec := range records {
		tag, ok := tags.First(rec.Tags)
		if !ok {
			fmt.Fprintf(report, "warning: no section tag for: %s\n", rec.Title)
			summary.Skipped++
			continue
		}
		id := tag.SubsectionID()

		sub := doc.Find("details#" + id).First()
		if sub.Length() == 0 {
			fmt.Fprintf(report, "warning: subsection %q not found, skipping: %s\n", id, rec.Title)
			summary.Skipped++
			continue
		}
		list := sub.Find("ul.arts").First()
		if list.Length() == 0 {
			fmt.Fprintf(report, "warning: no article list in %q, skipping: %s\n", id, rec.Title)
			summary.Skipped++
			continue
		}

		if hasURL(list, rec.Link) {
			fmt.Fprintf(report, "skip (already present in %s): %s\n", id, rec.Title)
			summary.Skipped++
			continue
		}

		insertItem(list, rec)
		summary.Added++
		fmt.Fprintf(report, "added to %s: %s\n", id, rec.Title)

		if sec := sub.ParentsFiltered("details.sec").First(); sec.Length() > 0 {
			if secID, ok := sec.Attr("id"); ok {
				modified[secID] = true
			}
		}
	}

	for secID := range modified {
		refreshSectionCount(doc, secID)
	}
	if summary.Added > 0 {
		refreshHeaderTotal(doc)
	}

	fmt.Fprintf(report, "\nDone. Added %d, skipped %d.\n", summary.Added, summary.Skipped)
	return summary
}

// insertItem places the record's <li> before the first existing item that
// is undated or older; a record that sorts after everything (or carries no
// date) is appended.
func insertItem(list *goquery.Selection, rec types.Bookmark) {
	item := articleItem(rec)
	if rec.Published != "" {
		inserted := false
		list.ChildrenFiltered("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
			existing := strings.TrimSpace(li.Find("span.bd-d").First().Text())
			if existing == "" || rec.Published > existing {
				li.BeforeHtml(item)
				inserted = true
				return false
			}
			return true
		})
		if inserted {
			return
		}
	}
	list.AppendHtml(item)
}

func hasURL(list *goquery.Selection, url string) bool {
	found := false
	list.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if href, _ := a.Attr("href"); href == url {
			found = true
			return false
		}
		return true
	})
	return found
}

// refreshSectionCount rewrites the "(N articles)" badge in the section's
// summary to match the section's current item count.
func refreshSectionCount(doc *goquery.Document, secID string) {
	sec := doc.Find("details#" + secID).First()
	if sec.Length() == 0 {
		return
	}
	count := sec.Find("ul.arts li").Length()
	sec.ChildrenFiltered("summary").Find("span.art-count").First().
		SetText(fmt.Sprintf("(%d articles)", count))
}

// refreshHeaderTotal rewrites the "N articles" figure in the document
// header to the total item count.
func refreshHeaderTotal(doc *goquery.Document) {
	total := doc.Find("details.sub ul.arts li").Length()
	p := doc.Find("header p").First()
	if p.Length() == 0 {
		return
	}
	p.SetText(articleTotalPattern.ReplaceAllString(p.Text(), fmt.Sprintf("%d articles", total)))
}
