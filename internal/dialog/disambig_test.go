package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbot/internal/catalog"
	"shopbot/pkg"
)

func toks(words ...string) []pkg.Token {
	out := make([]pkg.Token, len(words))
	for i, w := range words {
		out[i] = pkg.Token{Text: w, Lemma: w}
	}
	return out
}

func TestNarrowCandidatesByNameToken(t *testing.T) {
	candidates := []catalog.Entry{
		{Index: 0, Name: "Phone A", Price: 10},
		{Index: 1, Name: "Phone B", Price: 20},
	}

	// "phone" matches both, the unique "a" discriminates.
	kept, best := narrowCandidates(toks("i", "want", "phone", "a"), candidates)
	require.Len(t, kept, 1)
	assert.Equal(t, 0, kept[0].Index)
	assert.Equal(t, 2, best)
}

func TestNarrowCandidatesByRowIndex(t *testing.T) {
	candidates := []catalog.Entry{
		{Index: 4, Name: "Phone A", Price: 10},
		{Index: 7, Name: "Phone B", Price: 20},
	}

	kept, best := narrowCandidates(toks("number", "7"), candidates)
	require.Len(t, kept, 1)
	assert.Equal(t, 7, kept[0].Index)
	assert.Equal(t, 1, best)
}

func TestNarrowCandidatesByPrice(t *testing.T) {
	candidates := []catalog.Entry{
		{Index: 0, Name: "Phone A", Price: 10},
		{Index: 1, Name: "Phone B", Price: 24.9},
	}

	kept, _ := narrowCandidates(toks("the", "24.9", "one"), candidates)
	require.Len(t, kept, 1)
	assert.Equal(t, 1, kept[0].Index)
}

func TestNarrowCandidatesZeroScoreKeepsAll(t *testing.T) {
	candidates := []catalog.Entry{
		{Index: 0, Name: "Phone A", Price: 10},
		{Index: 1, Name: "Phone B", Price: 20},
	}

	kept, best := narrowCandidates(toks("something", "green"), candidates)
	assert.Equal(t, 0, best)
	assert.Len(t, kept, 2)
}

func TestWantsBailOut(t *testing.T) {
	assert.True(t, wantsBailOut(toks("something", "else")))
	assert.True(t, wantsBailOut(toks("none", "of", "these")))
	assert.False(t, wantsBailOut(toks("phone", "a")))
}
