// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanzant/bookmark-engine/pkg/types"
)

const curatedOutline = `<html><body>
<header><h1>Curated articles</h1><p>Collection of 3 articles across 1 section.</p></header>
<details class="sec" id="sec2">
<summary>II. Economics <span class="art-count">(3 articles)</span></summary>
<details class="sub" id="s2a">
<summary>II-A Labor</summary>
<div class="sub-body">
<ul class="arts">
<li><a href="https://example.com/e1" target="_blank" rel="noopener">Existing New</a><span class="meta"><span class="bd bd-d">2024-01-01</span></span></li>
<li><a href="https://example.com/e2" target="_blank" rel="noopener">Existing Old</a><span class="meta"><span class="bd bd-d">2022-01-01</span></span></li>
<li><a href="https://example.com/eu" target="_blank" rel="noopener">Existing Undated</a><span class="meta"><span class="bd bd-d"></span></span></li>
</ul>
</div>
</details>
</details>
</body></html>`

func curatedDoc(t *testing.T) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(curatedOutline))
	require.NoError(t, err)
	return doc
}

func TestInsertPlacesByDate(t *testing.T) {
	doc := curatedDoc(t)
	records := []types.Bookmark{
		{Title: "Middle", Link: "https://example.com/mid", Published: "2023-06-01", Tags: []string{"_outl:II-A"}, WordCount: 800},
		{Title: "Duplicate", Link: "https://example.com/e1", Published: "2024-05-05", Tags: []string{"outl:IIa"}},
		{Title: "Fresh Undated", Link: "https://example.com/fu", Tags: []string{"outl:IIa"}},
		{Title: "Lost Section", Link: "https://example.com/ls", Tags: []string{"outl:IXz"}},
		{Title: "No Tag", Link: "https://example.com/nt", Tags: []string{"economics"}},
	}

	var report bytes.Buffer
	summary := Insert(doc, records, &report)

	assert.Equal(t, 2, summary.Added)
	assert.Equal(t, 3, summary.Skipped)
	assert.Contains(t, report.String(), "already present in s2a")
	assert.Contains(t, report.String(), `subsection "s9z" not found`)
	assert.Contains(t, report.String(), "no section tag for: No Tag")

	var titles []string
	doc.Find("details#s2a ul.arts li a").Each(func(_ int, a *goquery.Selection) {
		titles = append(titles, a.Text())
	})
	assert.Equal(t, []string{"Existing New", "Middle", "Existing Old", "Existing Undated", "Fresh Undated"}, titles)

	assert.Equal(t, "(5 articles)", doc.Find("details#sec2 span.art-count").Text())
	assert.Contains(t, doc.Find("header p").Text(), "5 articles")
}

func TestInsertNewestGoesFirst(t *testing.T) {
	doc := curatedDoc(t)
	records := []types.Bookmark{
		{Title: "Newest", Link: "https://example.com/newest", Published: "2025-01-01", Tags: []string{"outl:IIa"}},
	}

	var report bytes.Buffer
	Insert(doc, records, &report)

	first := doc.Find("details#s2a ul.arts li a").First()
	assert.Equal(t, "Newest", first.Text())
}

func TestInsertFileDryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outline.html")
	require.NoError(t, os.WriteFile(path, []byte(curatedOutline), 0o644))

	var report bytes.Buffer
	summary, err := InsertFile(path, []types.Bookmark{
		{Title: "Would Add", Link: "https://example.com/wa", Published: "2023-02-02", Tags: []string{"outl:IIa"}},
	}, true, &report)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Added)
	assert.Contains(t, report.String(), "dry run")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, curatedOutline, string(data), "dry run must leave the file untouched")
}

func TestInsertFileWritesBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outline.html")
	require.NoError(t, os.WriteFile(path, []byte(curatedOutline), 0o644))

	var report bytes.Buffer
	summary, err := InsertFile(path, []types.Bookmark{
		{Title: "Persisted", Link: "https://example.com/p", Published: "2023-02-02", Tags: []string{"outl:IIa"}},
	}, false, &report)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Added)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "https://example.com/p")
	assert.Contains(t, string(data), "(4 articles)")
}

func TestInsertFileMissingOutline(t *testing.T) {
	var report bytes.Buffer
	_, err := InsertFile(filepath.Join(t.TempDir(), "nope.html"), nil, false, &report)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening outline")
}
