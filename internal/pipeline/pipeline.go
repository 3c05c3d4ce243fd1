package pipeline

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog"

	"shopbot/internal/catalog"
	"shopbot/internal/nlu"
	"shopbot/pkg"
)

// Pipeline turns one raw utterance into a full Analysis. The steps
// (normalize -> negation scope -> extract) are wired as an eino chain,
// compiled once and invoked every turn.
type Pipeline struct {
	runnable compose.Runnable[string, *pkg.Analysis]
}

// New compiles the per-turn analysis chain.
func New(ctx context.Context, norm *nlu.Normalizer, cat *catalog.Catalog, log zerolog.Logger) (*Pipeline, error) {
	fallback := nlu.NewFieldsAnnotator(cat.AllBrands())

	normalize := compose.InvokableLambda(func(ctx context.Context, raw string) (*pkg.Analysis, error) {
		normalized, tokens, err := norm.Normalize(ctx, raw)
		if err != nil {
			// Annotation failure is never surfaced to the user; degrade to
			// whitespace tokenization for this turn.
			log.Warn().Err(err).Msg("annotator failed, falling back to whitespace tokens")
			tokens, err = fallback.Annotate(ctx, normalized)
			if err != nil {
				return nil, fmt.Errorf("normalize step: %w", err)
			}
		}
		return &pkg.Analysis{Raw: raw, Normalized: normalized, Tokens: tokens}, nil
	})

	scope := compose.InvokableLambda(func(ctx context.Context, a *pkg.Analysis) (*pkg.Analysis, error) {
		a.Scoped = nlu.ScopeNegation(a.Tokens)
		return a, nil
	})

	extract := compose.InvokableLambda(func(ctx context.Context, a *pkg.Analysis) (*pkg.Analysis, error) {
		ex := &a.Extraction

		// Category, brand and sort mode come from the negation-filtered
		// tokens; search type and meta intents from the unfiltered ones.
		if c, ok := nlu.ExtractCategory(a.Scoped); ok {
			ex.Category, ex.HasCategory = string(c), true
		}
		if b, ok := nlu.ExtractBrand(a.Scoped, cat); ok {
			ex.Brand, ex.HasBrand = b, true
		}
		if m, ok := nlu.ExtractSortMode(a.Scoped); ok {
			ex.Sort, ex.HasSort = m, true
		}
		if st, ok := nlu.ExtractSearchType(a.Tokens); ok {
			ex.SearchType, ex.HasSearch = st, true
		}
		if r, ok := nlu.ExtractPriceRange(a.Normalized, pkg.NewPriceRange()); ok {
			ex.Price, ex.HasPrice = r, true
		}
		ex.Meta = nlu.DetectMeta(a.Tokens, cat)

		log.Debug().
			Str("normalized", a.Normalized).
			Bool("category", ex.HasCategory).
			Bool("brand", ex.HasBrand).
			Bool("price", ex.HasPrice).
			Msg("utterance analyzed")
		return a, nil
	})

	chain := compose.NewChain[string, *pkg.Analysis]().
		AppendLambda(normalize).
		AppendLambda(scope).
		AppendLambda(extract)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile analysis chain: %w", err)
	}

	return &Pipeline{runnable: runnable}, nil
}

// Analyze runs the chain over one utterance.
func (p *Pipeline) Analyze(ctx context.Context, raw string) (*pkg.Analysis, error) {
	return p.runnable.Invoke(ctx, raw)
}
