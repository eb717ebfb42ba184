// Package outline reads a hierarchical markdown outline into an ordered
// sequence of bookmark records. Headings carry the hierarchy; list items
// carry the entries, optionally prefixed with a "YYYY-MM-DD:" date token
// and linking to the article (often a broken internal reference that
// reconciliation later repairs).
//
// The reader assumes the outline's structural conventions: heading depth
// is hierarchy level, the date is the leading token of the item text. A
// document that deviates produces best-effort partial extraction rather
// than an error; that is a documented limitation of the source format.
package outline

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/evanzant/bookmark-engine/pkg/types"
)

// maxDepth is the deepest heading level the outline hierarchy uses.
const maxDepth = 4

// datedTitle matches a leading "YYYY-MM-DD:" token in an entry's text.
var datedTitle = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}):\s*(.*)$`)

// Load reads and parses the outline file at path. It aborts (error) only
// on unreadable input or when the document yields no entries at all; both
// are structural failures the operator must fix before the run can mean
// anything.
func Load(path string) ([]types.Bookmark, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading outline %s: %w", path, err)
	}
	records := Parse(data)
	if len(records) == 0 {
		return nil, fmt.Errorf("no outline entries found in %s: expected markdown list items under headings", path)
	}
	return records, nil
}

// Parse extracts bookmark records from markdown outline content in
// document order.
func Parse(source []byte) []types.Bookmark {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var records []types.Bookmark

	// hierarchy holds the current heading text per level; setting level L
	// clears everything deeper, mirroring how the outline nests.
	hierarchy := make([]string, maxDepth)

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			level := node.Level
			if level > maxDepth {
				level = maxDepth
			}
			for i := level - 1; i < maxDepth; i++ {
				hierarchy[i] = ""
			}
			hierarchy[level-1] = inlineText(node, source)
			return ast.WalkContinue, nil

		case *ast.ListItem:
			rec, ok := entryFromItem(node, source, hierarchy)
			if ok {
				records = append(records, rec)
			}
			// Keep walking: nested lists are visited as their own items.
			return ast.WalkContinue, nil
		}

		return ast.WalkContinue, nil
	})

	return records
}

// entryFromItem builds a record from a list item's own text block,
// ignoring any nested list the item may contain.
func entryFromItem(item *ast.ListItem, source []byte, hierarchy []string) (types.Bookmark, bool) {
	block := item.FirstChild()
	if block == nil {
		return types.Bookmark{}, false
	}
	switch block.(type) {
	case *ast.TextBlock, *ast.Paragraph:
	default:
		return types.Bookmark{}, false
	}

	title := strings.TrimSpace(inlineText(block, source))
	if title == "" {
		return types.Bookmark{}, false
	}

	rec := types.Bookmark{
		Title:       title,
		Link:        firstLink(block, source),
		HeadingPath: headingPath(hierarchy),
		Source:      types.SourceOutline,
	}
	if rec.Link == "" {
		rec.Source = types.SourceNone
	}

	if m := datedTitle.FindStringSubmatch(rec.Title); m != nil {
		rec.Published = m[1]
		rec.Title = strings.TrimSpace(m[2])
		if rec.Title == "" {
			return types.Bookmark{}, false
		}
	}

	return rec, true
}

// headingPath returns the non-empty prefix of the hierarchy stack.
func headingPath(hierarchy []string) []string {
	var path []string
	for _, h := range hierarchy {
		if h == "" {
			break
		}
		path = append(path, h)
	}
	return path
}

// inlineText collects the rendered text of a node's inline children,
// descending into links and emphasis but not into nested lists.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.List, *ast.ListItem:
			// A nested list belongs to its own entries.
		case *ast.AutoLink:
			b.Write(c.URL(source))
		default:
			b.WriteString(inlineText(child, source))
		}
	}
	return b.String()
}

// firstLink returns the destination of the first link or autolink found
// under n. Nested lists are skipped for the same reason as in inlineText.
func firstLink(n ast.Node, source []byte) string {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Link:
			return string(c.Destination)
		case *ast.AutoLink:
			return string(c.URL(source))
		case *ast.List, *ast.ListItem:
			continue
		}
		if link := firstLink(child, source); link != "" {
			return link
		}
	}
	return ""
}
