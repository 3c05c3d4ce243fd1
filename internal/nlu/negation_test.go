package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shopbot/pkg"
)

func toks(words ...string) []pkg.Token {
	out := make([]pkg.Token, len(words))
	for i, w := range words {
		out[i] = pkg.Token{Text: w, Lemma: w}
	}
	return out
}

func lemmas(tokens []pkg.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Lemma
	}
	return out
}

func TestScopeNegation(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "leading negation swallows everything",
			in:   []string{"no", "hate", "computer"},
			want: []string{},
		},
		{
			name: "negative verb after negation never opens",
			in:   []string{"i", "do", "not", "hate", "computer"},
			want: []string{"i", "do", "not", "hate", "computer"},
		},
		{
			name: "bare negative verb opens a span",
			in:   []string{"i", "hate", "samsung", "but", "like", "apple"},
			want: []string{"i", "but", "like", "apple"},
		},
		{
			name: "not followed by plain verb opens",
			in:   []string{"not", "want", "computer"},
			want: []string{},
		},
		{
			name: "cancel token closes span and is kept",
			in:   []string{"i", "dislike", "drone", "want", "a", "phone"},
			want: []string{"i", "want", "a", "phone"},
		},
		{
			name: "mid-sentence no drops the rest",
			in:   []string{"show", "me", "phone", "no", "samsung"},
			want: []string{"show", "me", "phone"},
		},
		{
			name: "no negation passes through",
			in:   []string{"i", "want", "a", "cheap", "phone"},
			want: []string{"i", "want", "a", "cheap", "phone"},
		},
		{
			name: "empty input",
			in:   nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScopeNegation(toks(tt.in...))
			assert.Equal(t, tt.want, lemmas(got))
		})
	}
}
