// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// metaDateSelectors are tried in order; publishers are wildly inconsistent
// about which meta tag carries the publication date.
var metaDateSelectors = []string{
	`meta[property="article:published_time"]`,
	`meta[property="article:published"]`,
	`meta[name="publish-date"]`,
	`meta[name="publication-date"]`,
	`meta[name="date"]`,
	`meta[name="DC.date"]`,
	`meta[name="DC.Date"]`,
	`meta[property="og:published_time"]`,
	`meta[name="publishdate"]`,
	`meta[name="pub_date"]`,
	`meta[itemprop="datePublished"]`,
	`meta[itemprop="publishDate"]`,
}

var timeSelectors = []string{
	`time[datetime]`,
	`time[pubdate]`,
	`.published-date time`,
	`.publish-date time`,
	`.date time`,
}

var dateClassSelectors = []string{
	`.published-date`,
	`.publish-date`,
	`.publication-date`,
	`.date-published`,
	`.article-date`,
	`.post-date`,
	`.entry-date`,
	`.timestamp`,
	`[class*="date"]`,
	`[class*="publish"]`,
}

// jsonLDDateKeys are the schema.org properties that carry a publication
// date, in preference order.
var jsonLDDateKeys = []string{"datePublished", "publishDate", "dateCreated", "uploadDate"}

// textDatePatterns scan raw page text as a last resort.
var textDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Published:?\s*([A-Za-z]+ \d{1,2},? \d{4})`),
	regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`),
	regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
	regexp.MustCompile(`([A-Za-z]+ \d{1,2},? \d{4})`),
}

// dateLayouts mirror the formats the exports and publishers were observed
// to use. Month/day order before day/month for the slash forms.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
}

var isoDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// extractDate walks the extraction ladder: meta tags, JSON-LD, time
// elements, date-classed elements, then raw text patterns. It returns the
// normalized YYYY-MM-DD date and the method that produced it, or ("","")
// when nothing on the page parses as a date.
func extractDate(doc *goquery.Document) (string, string) {
	for _, sel := range metaDateSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		content, _ := node.Attr("content")
		if content == "" {
			content, _ = node.Attr("value")
		}
		if date := ParseDateString(content); date != "" {
			return date, "meta"
		}
	}

	if date := jsonLDDate(doc); date != "" {
		return date, "jsonld"
	}

	for _, sel := range timeSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		attr, _ := node.Attr("datetime")
		if attr == "" {
			attr, _ = node.Attr("pubdate")
		}
		if date := ParseDateString(attr); date != "" {
			return date, "time_attr"
		}
		if date := ParseDateString(strings.TrimSpace(node.Text())); date != "" {
			return date, "time_text"
		}
	}

	for _, sel := range dateClassSelectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, node *goquery.Selection) bool {
			text := strings.TrimSpace(node.Text())
			if text == "" || len(text) >= 100 {
				return true
			}
			if date := ParseDateString(text); date != "" {
				found = date
				return false
			}
			return true
		})
		if found != "" {
			return found, "class_text"
		}
	}

	text := doc.Text()
	for _, pattern := range textDatePatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, 20) {
			if date := ParseDateString(m[1]); date != "" {
				return date, "text_pattern"
			}
		}
	}

	return "", ""
}

// jsonLDDate scans ld+json script blocks for the known date properties.
func jsonLDDate(doc *goquery.Document) string {
	var found string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, node *goquery.Selection) bool {
		var data interface{}
		if err := json.Unmarshal([]byte(node.Text()), &data); err != nil {
			return true
		}
		if date := jsonLDDateValue(data); date != "" {
			found = date
			return false
		}
		return true
	})
	return found
}

func jsonLDDateValue(data interface{}) string {
	switch v := data.(type) {
	case map[string]interface{}:
		for _, key := range jsonLDDateKeys {
			if raw, ok := v[key].(string); ok {
				if date := ParseDateString(raw); date != "" {
					return date
				}
			}
		}
		for _, nested := range v {
			if date := jsonLDDateValue(nested); date != "" {
				return date
			}
		}
	case []interface{}:
		for _, item := range v {
			if date := jsonLDDateValue(item); date != "" {
				return date
			}
		}
	}
	return ""
}

// ParseDateString normalizes a date string to YYYY-MM-DD, trying the known
// layouts and falling back to an embedded ISO date. Returns "" when
// nothing parses.
func ParseDateString(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if m := isoDatePattern.FindString(s); m != "" {
		if _, err := time.Parse("2006-01-02", m); err == nil {
			return m
		}
	}
	return ""
}
