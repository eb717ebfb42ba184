// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanzant/bookmark-engine/pkg/types"
)

func refs(pairs ...string) []types.ReferenceEntry {
	var entries []types.ReferenceEntry
	for i := 0; i < len(pairs); i += 2 {
		entries = append(entries, types.ReferenceEntry{Title: pairs[i], CanonicalLink: pairs[i+1]})
	}
	return entries
}

func TestReconcileExactMatch(t *testing.T) {
	idx, err := NewIndex(refs("Example Post", "https://example.com/post"))
	require.NoError(t, err)

	records := []types.Bookmark{
		{Title: "Example Post", Link: "./outline#123", Source: types.SourceOutline},
	}
	summary := Reconcile(records, idx, types.ReconcileConfig{})

	assert.Equal(t, 1, summary.Resolved)
	assert.Empty(t, summary.Unresolved)
	assert.Equal(t, "https://example.com/post", records[0].Link)
	assert.Equal(t, types.SourceReference, records[0].Source)
}

func TestReconcileMissKeepsLink(t *testing.T) {
	idx, err := NewIndex(refs("Known", "https://example.com/known"))
	require.NoError(t, err)

	records := []types.Bookmark{
		{Title: "Unknown Post", Link: "./outline#9", Source: types.SourceOutline},
	}
	summary := Reconcile(records, idx, types.ReconcileConfig{})

	assert.Zero(t, summary.Resolved)
	assert.Equal(t, []string{"Unknown Post"}, summary.Unresolved)
	assert.Equal(t, "./outline#9", records[0].Link)
	assert.Equal(t, types.SourceOutline, records[0].Source)
}

func TestReconcileCaseSensitiveByDefault(t *testing.T) {
	idx, err := NewIndex(refs("Example Post", "https://example.com/post"))
	require.NoError(t, err)

	records := []types.Bookmark{{Title: "example post", Link: "./x"}}

	summary := Reconcile(records, idx, types.ReconcileConfig{})
	assert.Equal(t, 1, summary.Misses())
	assert.Equal(t, "./x", records[0].Link)

	// Normalized pass picks it up.
	summary = Reconcile(records, idx, types.ReconcileConfig{Normalized: true})
	assert.Equal(t, 1, summary.Resolved)
	assert.Equal(t, "https://example.com/post", records[0].Link)
}

func TestReconcileFirstWins(t *testing.T) {
	idx, err := NewIndex(refs(
		"Dup", "https://example.com/first",
		"Dup", "https://example.com/second",
	))
	require.NoError(t, err)

	records := []types.Bookmark{{Title: "Dup"}}
	Reconcile(records, idx, types.ReconcileConfig{})
	assert.Equal(t, "https://example.com/first", records[0].Link)
}

func TestReconcileDeterministic(t *testing.T) {
	idx, err := NewIndex(refs("A", "https://a", "B", "https://b"))
	require.NoError(t, err)

	run := func() ([]types.Bookmark, Summary) {
		records := []types.Bookmark{{Title: "A", Link: "./1"}, {Title: "C", Link: "./2"}, {Title: "B", Link: "./3"}}
		return records, Reconcile(records, idx, types.ReconcileConfig{})
	}
	r1, s1 := run()
	r2, s2 := run()
	assert.Equal(t, r1, r2)
	assert.Equal(t, s1, s2)

	// Order preserved: C stays between A and B.
	assert.Equal(t, "C", r1[1].Title)
}

func TestNewIndexEmpty(t *testing.T) {
	_, err := NewIndex(nil)
	assert.Error(t, err)
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Hello, World!", "hello world"},
		{"  Spaced   Out  ", "spaced out"},
		{"Café déjà-vu", "café déjàvu"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTitle(tt.in), "input %q", tt.in)
	}
}
