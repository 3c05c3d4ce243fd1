package nlu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbot/internal/catalog"
)

func TestRewriteAliases(t *testing.T) {
	n := NewNormalizer(nil, NewFieldsAnnotator(nil))

	tests := []struct {
		in   string
		want string
	}{
		{"I want an iPhone", "i want an apple phone"},
		{"a cheap Laptop", "a cheap computer"},
		{"my MacBook broke", "my apple computer broke"},
		{"a vacuum cleaner please", "a samsung home please"},
		{"virtual reality games", "game games"},
		{"no aliases here", "no aliases here"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.Rewrite(tt.in))
	}
}

func TestRewriteIsSinglePass(t *testing.T) {
	// A replacement's output may feed a later rule in the same pass, but the
	// table is never re-applied from the top.
	n := NewNormalizer([]Alias{
		{From: "b", To: "c"},
		{From: "a", To: "b"},
	}, NewFieldsAnnotator(nil))

	// "a" becomes "b" only after the "b" rule already ran, so it stays "b".
	assert.Equal(t, "b", n.Rewrite("a"))
}

func TestCategoryLabelRoundTrip(t *testing.T) {
	n := NewNormalizer(nil, NewFieldsAnnotator(nil))
	ctx := context.Background()

	for _, cat := range catalog.Categories {
		_, tokens, err := n.Normalize(ctx, cat.Label())
		require.NoError(t, err)

		got, ok := ExtractCategory(tokens)
		require.True(t, ok, "label %q did not resolve", cat.Label())
		assert.Equal(t, cat, got)
	}
}

func TestNormalizeAnnotates(t *testing.T) {
	n := NewNormalizer(nil, NewFieldsAnnotator([]string{"philips"}))
	ctx := context.Background()

	normalized, tokens, err := n.Normalize(ctx, "Two Philips phones")
	require.NoError(t, err)
	assert.Equal(t, "two philips phones", normalized)

	require.Len(t, tokens, 3)
	assert.Equal(t, "philips", tokens[1].Lemma) // brands bypass singularization
	assert.Equal(t, "phone", tokens[2].Lemma)
}
