package nlu

import (
	"shopbot/internal/catalog"
	"shopbot/pkg"
)

var (
	quitWords = map[string]struct{}{
		"bye": {}, "goodbye": {}, "exit": {}, "quit": {}, "leave": {}, "stop": {},
	}
	greetingWords = map[string]struct{}{"hi": {}, "hello": {}}
	// "ye" is what the singularizer makes of "yes".
	yesWords = map[string]struct{}{"ye": {}, "yep": {}, "yeah": {}}
	noWords  = map[string]struct{}{"no": {}, "not": {}, "nope": {}}
)

// DetectMeta evaluates the independent meta-intent booleans over the
// unfiltered token sequence.
//
// The negative intent is suppressed when a brand token co-occurs: an answer
// naming a brand must not be misread as a "no" even if the utterance also
// carries a negation-like token.
func DetectMeta(tokens []pkg.Token, c *catalog.Catalog) pkg.MetaIntents {
	var m pkg.MetaIntents
	var hasNo, hasNot, hasWould, hasBrand bool
	for _, t := range tokens {
		w := t.Lemma
		if _, ok := quitWords[w]; ok {
			m.Quit = true
		}
		if _, ok := greetingWords[w]; ok {
			m.Greeting = true
		}
		if _, ok := yesWords[w]; ok {
			m.Affirmative = true
		}
		if _, ok := noWords[w]; ok {
			hasNo = true
		}
		if w == "not" {
			hasNot = true
		}
		if w == "would" {
			hasWould = true
		}
		if c != nil && (c.IsBrand(w) || c.IsBrand(t.Text)) {
			hasBrand = true
		}
	}
	if hasWould && !hasNot {
		m.Affirmative = true
	}
	if hasNo && !hasBrand {
		m.Negative = true
	}
	return m
}
