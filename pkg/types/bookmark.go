// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LinkSource records where a bookmark's final link came from.
type LinkSource string

const (
	// SourceReference means the link was replaced by a reference-table match.
	SourceReference LinkSource = "reference"

	// SourceOutline means no match was found and the original outline link
	// (possibly broken) was kept.
	SourceOutline LinkSource = "outline"

	// SourceNone means the record carried no link at all.
	SourceNone LinkSource = "none"
)

// Bookmark is the central record of the pipeline. It is created once per
// run by the outline reader or the raindrop loader, mutated in place by
// reconciliation, expansion, and enrichment, and discarded at process exit.
type Bookmark struct {
	// Title is the human-readable label, used as the join key against the
	// reference table. Not guaranteed unique; first match wins.
	Title string `json:"title" yaml:"title"`

	// Link is the record's URL. It may start out as a broken internal
	// reference or a shortener URL and is overwritten as reconciliation
	// and redirect expansion succeed.
	Link string `json:"link" yaml:"link"`

	// HeadingPath is the record's position in the source outline
	// hierarchy, outermost heading first. Read-only after extraction.
	HeadingPath []string `json:"heading_path,omitempty" yaml:"heading_path,omitempty"`

	// Published is the publication date in YYYY-MM-DD form, empty when
	// unavailable. Set by the outline reader, the raindrop note field, or
	// the enricher.
	Published string `json:"published,omitempty" yaml:"published,omitempty"`

	// WordCount is the approximate article length; zero means unknown.
	WordCount int `json:"word_count,omitempty" yaml:"word_count,omitempty"`

	// Tags holds the raw tag list from a raindrop export. Section
	// placement tags use the "outl:" convention.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Note and Excerpt carry the free-text raindrop fields.
	Note    string `json:"note,omitempty" yaml:"note,omitempty"`
	Excerpt string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`

	// Created is the date (YYYY-MM-DD) the bookmark was saved, when the
	// source export carries one.
	Created string `json:"created,omitempty" yaml:"created,omitempty"`

	// Source records where the final link came from.
	Source LinkSource `json:"source,omitempty" yaml:"source,omitempty"`

	// DateStatus, CountStatus, and CountMethod record the per-record
	// outcome of an enrichment run ("meta", "jsonld", "timeout", ...).
	DateStatus  string `json:"date_status,omitempty" yaml:"date_status,omitempty"`
	CountStatus string `json:"wc_status,omitempty" yaml:"wc_status,omitempty"`
	CountMethod string `json:"wc_method,omitempty" yaml:"wc_method,omitempty"`
}

// ReferenceEntry is one (title, canonical link) pair from the
// authoritative CSV export.
type ReferenceEntry struct {
	Title         string `json:"title" yaml:"title"`
	CanonicalLink string `json:"link" yaml:"link"`
}
