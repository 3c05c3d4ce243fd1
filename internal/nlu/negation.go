package nlu

import "shopbot/pkg"

// Negation vocabulary. The scoper works on lemma forms.
var (
	negationWords = map[string]struct{}{"no": {}, "not": {}}
	negativeVerbs = map[string]struct{}{"hate": {}, "dislike": {}, "discard": {}}
	cancelWords   = map[string]struct{}{"but": {}, "want": {}, "like": {}, "need": {}}
)

func isNegation(w string) bool { _, ok := negationWords[w]; return ok }
func isNegativeVerb(w string) bool {
	_, ok := negativeVerbs[w]
	return ok
}
func isCancel(w string) bool { _, ok := cancelWords[w]; return ok }

// ScopeNegation removes tokens that fall inside a negated span. Single
// left-to-right pass with one token of lookahead/lookback, no backtracking:
//
//   - a negation marker opens a span unless the next token is itself a
//     negative verb (the verb carries the negation instead, and its own rule
//     below then sees a negation predecessor and stays closed);
//   - a bare negative verb opens a span without a marker;
//   - a cancel token closes an open span unless it directly follows a
//     negation marker, and is itself kept;
//   - any negative token at index 0 opens a span immediately, there being no
//     neighbors to defer to.
//
// A token is emitted only when no span is open at the time it is visited.
func ScopeNegation(tokens []pkg.Token) []pkg.Token {
	negated := false
	out := make([]pkg.Token, 0, len(tokens))
	for i, tok := range tokens {
		w := tok.Lemma
		nextIsNegativeVerb := i+1 < len(tokens) && isNegativeVerb(tokens[i+1].Lemma)
		prevIsNegation := i > 0 && isNegation(tokens[i-1].Lemma)
		switch {
		case i == 0 && (isNegation(w) || isNegativeVerb(w)):
			negated = true
		case isNegation(w):
			if !nextIsNegativeVerb {
				negated = true
			}
		case isNegativeVerb(w):
			if !prevIsNegation {
				negated = true
			}
		case negated && isCancel(w):
			if !prevIsNegation {
				negated = false
			}
		}
		if !negated {
			out = append(out, tok)
		}
	}
	return out
}
