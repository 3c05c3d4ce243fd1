package dialog

import (
	"strconv"
	"strings"

	"shopbot/internal/catalog"
	"shopbot/pkg"
)

// bailOutWords let the user leave the disambiguation loop without choosing.
var bailOutWords = map[string]struct{}{
	"else": {}, "other": {}, "others": {}, "another": {},
	"none": {}, "nothing": {}, "no": {}, "nope": {},
}

func wantsBailOut(tokens []pkg.Token) bool {
	for _, t := range tokens {
		if _, ok := bailOutWords[t.Lemma]; ok {
			return true
		}
		if _, ok := bailOutWords[t.Text]; ok {
			return true
		}
	}
	return false
}

// scoreCandidate counts negation-filtered utterance tokens that literally
// appear among the candidate's name tokens, equal its catalog row index, or
// appear in its price's string form.
func scoreCandidate(tokens []pkg.Token, e catalog.Entry) int {
	nameTokens := map[string]struct{}{}
	for _, w := range strings.Fields(strings.ToLower(e.Name)) {
		nameTokens[w] = struct{}{}
	}
	idx := strconv.Itoa(e.Index)
	price := formatPrice(e.Price)

	score := 0
	for _, t := range tokens {
		if _, ok := nameTokens[t.Text]; ok {
			score++
			continue
		}
		if _, ok := nameTokens[t.Lemma]; ok {
			score++
			continue
		}
		if t.Text == idx {
			score++
			continue
		}
		if strings.Contains(price, t.Text) {
			score++
		}
	}
	return score
}

// narrowCandidates keeps the candidates achieving the maximum score. A zero
// maximum keeps the full set, signalling a dead-end to the caller.
func narrowCandidates(tokens []pkg.Token, candidates []catalog.Entry) ([]catalog.Entry, int) {
	best := 0
	scores := make([]int, len(candidates))
	for i, c := range candidates {
		scores[i] = scoreCandidate(tokens, c)
		if scores[i] > best {
			best = scores[i]
		}
	}
	if best == 0 {
		return candidates, 0
	}
	var kept []catalog.Entry
	for i, c := range candidates {
		if scores[i] == best {
			kept = append(kept, c)
		}
	}
	return kept, best
}
