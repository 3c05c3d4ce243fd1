package nlu

import (
	"context"
	"strings"

	"shopbot/pkg"
)

// Alias is one normalization rewrite rule.
type Alias struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// DefaultAliases rewrites well-known product words and the category display
// labels to canonical catalog terms. Order matters: replacement is plain
// substring rewriting, so longer triggers must precede triggers they contain
// (macbookpro before macbook, "virtual reality" before vr).
var DefaultAliases = []Alias{
	{From: "phones & tablets", To: "phone"},
	{From: "computing", To: "computer"},
	{From: "gaming & vr", To: "game"},
	{From: "wearables", To: "clock"},
	{From: "smart home", To: "home"},
	{From: "drones", To: "drone"},
	{From: "macbookpro", To: "apple computer"},
	{From: "macbook", To: "apple computer"},
	{From: "laptop", To: "computer"},
	{From: "watch", To: "clock"},
	{From: "vacuum cleaner", To: "samsung home"},
	{From: "iphone", To: "apple phone"},
	{From: "galaxy", To: "samsung phone"},
	{From: "virtual reality", To: "game"},
	{From: "vr", To: "game"},
}

// Normalizer lower-cases an utterance, applies the alias table and annotates
// the result. Pure apart from the annotator call.
type Normalizer struct {
	aliases   []Alias
	annotator Annotator
}

// NewNormalizer builds a normalizer. A nil or empty alias list falls back to
// DefaultAliases.
func NewNormalizer(aliases []Alias, annotator Annotator) *Normalizer {
	if len(aliases) == 0 {
		aliases = DefaultAliases
	}
	return &Normalizer{aliases: aliases, annotator: annotator}
}

// Rewrite lower-cases the input and applies every alias once, in table order.
// The pass is deliberately not recursive: a replacement's output may contain
// a later trigger (and will then be rewritten by that later rule in the same
// pass), but the table is never re-applied from the top. Callers relying on
// chained aliases must order the table accordingly.
func (n *Normalizer) Rewrite(raw string) string {
	s := strings.ToLower(raw)
	for _, a := range n.aliases {
		if strings.Contains(s, a.From) {
			s = strings.ReplaceAll(s, a.From, a.To)
		}
	}
	return s
}

// Normalize rewrites the utterance and annotates it, returning the normalized
// string together with its token sequence.
func (n *Normalizer) Normalize(ctx context.Context, raw string) (string, []pkg.Token, error) {
	normalized := n.Rewrite(raw)
	tokens, err := n.annotator.Annotate(ctx, normalized)
	if err != nil {
		return normalized, nil, err
	}
	return normalized, tokens, nil
}
