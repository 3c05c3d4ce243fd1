package nlu

import (
	"context"
	"fmt"
	"strings"

	prose "github.com/jdkato/prose/v2"
	"github.com/jinzhu/inflection"

	"shopbot/pkg"
)

// Annotator turns a normalized string into an ordered token sequence with
// lemma and part-of-speech annotations.
type Annotator interface {
	Annotate(ctx context.Context, text string) ([]pkg.Token, error)
}

// ProseAnnotator tokenizes and POS-tags with prose and singularizes lemmas
// with inflection. Known brand strings are passed through verbatim so that
// multi-word brand names are not corrupted by singularization.
type ProseAnnotator struct {
	brands map[string]struct{}
}

// NewProseAnnotator builds the default annotator over a brand vocabulary.
func NewProseAnnotator(brands []string) *ProseAnnotator {
	set := make(map[string]struct{}, len(brands))
	for _, b := range brands {
		set[strings.ToLower(b)] = struct{}{}
	}
	return &ProseAnnotator{brands: set}
}

func (a *ProseAnnotator) Annotate(ctx context.Context, text string) ([]pkg.Token, error) {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("failed to annotate utterance: %w", err)
	}
	toks := doc.Tokens()
	out := make([]pkg.Token, 0, len(toks))
	for _, t := range toks {
		lemma := t.Text
		if _, isBrand := a.brands[t.Text]; !isBrand {
			lemma = inflection.Singular(t.Text)
		}
		out = append(out, pkg.Token{Text: t.Text, Lemma: lemma, Tag: t.Tag})
	}
	return out, nil
}

// FieldsAnnotator is a degraded annotator that splits on whitespace and
// leaves tokens untagged. Used when the tagging backend is unavailable and
// as a test double. Brand strings bypass singularization here too.
type FieldsAnnotator struct {
	brands map[string]struct{}
}

// NewFieldsAnnotator builds the fallback annotator over a brand vocabulary.
func NewFieldsAnnotator(brands []string) *FieldsAnnotator {
	set := make(map[string]struct{}, len(brands))
	for _, b := range brands {
		set[strings.ToLower(b)] = struct{}{}
	}
	return &FieldsAnnotator{brands: set}
}

func (a *FieldsAnnotator) Annotate(_ context.Context, text string) ([]pkg.Token, error) {
	fields := strings.Fields(text)
	out := make([]pkg.Token, len(fields))
	for i, f := range fields {
		lemma := f
		if _, isBrand := a.brands[f]; !isBrand {
			lemma = inflection.Singular(f)
		}
		out[i] = pkg.Token{Text: f, Lemma: lemma}
	}
	return out, nil
}
