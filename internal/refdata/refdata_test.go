// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadReferenceFirstWins(t *testing.T) {
	path := writeCSV(t, `title,url
Example Post,https://example.com/post
Example Post,https://example.com/duplicate
Other Post,https://example.com/other
`)
	entries, err := LoadReference(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "https://example.com/post", entries[0].CanonicalLink)
	assert.Equal(t, "Other Post", entries[1].Title)
}

func TestLoadReferenceColumnVariants(t *testing.T) {
	// "Link" header in a different casing.
	path := writeCSV(t, `Title,Link
A,https://example.com/a
`)
	entries, err := LoadReference(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "https://example.com/a", entries[0].CanonicalLink)

	// No url/link header at all: detect by content.
	path = writeCSV(t, `title,location
B,https://example.com/b
`)
	entries, err = LoadReference(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/b", entries[0].CanonicalLink)
}

func TestLoadReferenceToleratesShortRows(t *testing.T) {
	path := writeCSV(t, `title,url,extra
A,https://example.com/a,x
B
C,https://example.com/c
`)
	entries, err := LoadReference(path)
	require.NoError(t, err)
	// B has no link value and is skipped; A and C survive.
	require.Len(t, entries, 2)
	assert.Equal(t, "A", entries[0].Title)
	assert.Equal(t, "C", entries[1].Title)
}

func TestLoadReferenceAborts(t *testing.T) {
	_, err := LoadReference(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = LoadReference(writeCSV(t, "title,url\n"))
	assert.ErrorContains(t, err, "empty")

	_, err = LoadReference(writeCSV(t, "name,url\nA,https://example.com/a\n"))
	assert.ErrorContains(t, err, "no title column")
}

func TestLoadRaindrop(t *testing.T) {
	path := writeCSV(t, `title,url,tags,note,excerpt,created
First,https://example.com/1,"ai, _outl:VII-A","pub:2024-05-01 wordcount:1,250",An excerpt,2024-06-01T10:00:00Z
Second,https://example.com/2,,,,
`)
	records, err := LoadRaindrop(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, []string{"ai", "_outl:VII-A"}, first.Tags)
	assert.Equal(t, "2024-05-01", first.Published)
	assert.Equal(t, 1250, first.WordCount)
	assert.Equal(t, "An excerpt", first.Excerpt)
	assert.Equal(t, "2024-06-01", first.Created)

	second := records[1]
	assert.Empty(t, second.Tags)
	assert.Empty(t, second.Published)
	assert.Zero(t, second.WordCount)
}

func TestNoteTokens(t *testing.T) {
	tests := []struct {
		note     string
		wantDate string
		wantWC   int
	}{
		{"pub:2024-01-02 wordcount:900", "2024-01-02", 900},
		{"wordcount:12,345", "", 12345},
		{"pub:soon", "", 0},
		{"", "", 0},
		{"unrelated text", "", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantDate, NotePubDate(tt.note), "note %q", tt.note)
		assert.Equal(t, tt.wantWC, NoteWordCount(tt.note), "note %q", tt.note)
	}
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitTags("a, b; c"))
	assert.Nil(t, SplitTags("  "))
}
