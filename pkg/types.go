package pkg

import "math"

// Core dialogue types shared between the analysis pipeline and the engine.

// Token is one annotated word of an utterance.
type Token struct {
	Text  string `json:"text"`  // surface form after normalization
	Lemma string `json:"lemma"` // singular/lemma form
	Tag   string `json:"tag"`   // part-of-speech tag (Penn Treebank)
}

// SearchType is the user's declared preference to browse by category or by brand.
type SearchType string

const (
	SearchByCategory SearchType = "category"
	SearchByBrand    SearchType = "brand"
)

// SortMode controls the display order of product listings.
type SortMode string

const (
	SortExpensiveFirst SortMode = "expensive" // price descending
	SortCheapFirst     SortMode = "cheap"     // price ascending
)

// PriceRange is an open interval over product prices. Unset bounds are
// +-infinity, so a fresh range matches everything.
type PriceRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// NewPriceRange returns an unbounded price range.
func NewPriceRange() PriceRange {
	return PriceRange{Low: math.Inf(-1), High: math.Inf(1)}
}

// Contains reports whether p falls strictly inside the range.
func (r PriceRange) Contains(p float64) bool {
	return p > r.Low && p < r.High
}

// Bounded reports whether either end of the range has been set.
func (r PriceRange) Bounded() bool {
	return !math.IsInf(r.Low, -1) || !math.IsInf(r.High, 1)
}

// MetaIntents are the per-turn conversational intents that are checked
// independently of slot extraction.
type MetaIntents struct {
	Quit        bool `json:"quit"`
	Greeting    bool `json:"greeting"`
	Affirmative bool `json:"affirmative"`
	Negative    bool `json:"negative"`
}

// Extraction is the tagged result of running every slot extractor over one
// utterance. Absent slots carry their Has* flag unset rather than a sentinel
// value.
type Extraction struct {
	Category    string      `json:"category,omitempty"`
	HasCategory bool        `json:"has_category"`
	Brand       string      `json:"brand,omitempty"`
	HasBrand    bool        `json:"has_brand"`
	Price       PriceRange  `json:"price"`
	HasPrice    bool        `json:"has_price"`
	SearchType  SearchType  `json:"search_type,omitempty"`
	HasSearch   bool        `json:"has_search"`
	Sort        SortMode    `json:"sort,omitempty"`
	HasSort     bool        `json:"has_sort"`
	Meta        MetaIntents `json:"meta"`
}

// Analysis is everything the pipeline derives from one raw utterance.
// Lifetime is a single turn.
type Analysis struct {
	Raw        string     `json:"raw"`
	Normalized string     `json:"normalized"`
	Tokens     []Token    `json:"tokens"`
	Scoped     []Token    `json:"scoped"` // Tokens with negated spans removed
	Extraction Extraction `json:"extraction"`
}

// ScopedLemmas returns the lemma forms of the negation-filtered tokens.
func (a *Analysis) ScopedLemmas() []string {
	out := make([]string, len(a.Scoped))
	for i, t := range a.Scoped {
		out[i] = t.Lemma
	}
	return out
}
