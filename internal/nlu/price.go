package nlu

import (
	"strconv"
	"strings"

	"shopbot/pkg"
)

// parseAmount parses a numeric token, tolerating a leading "$".
func parseAmount(tok string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimPrefix(tok, "$"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ExtractPriceRange scans token windows of the normalized text for price
// patterns and applies them to the prior range. Patterns, in scan order:
//
//	"from A to B" / "between A and B"  -> low=A, high=B (both must parse)
//	"below X" / "under X"              -> high=X
//	"above X"                          -> low=X
//	"higher than X"                    -> high=X
//	"lower than X"                     -> low=X
//
// Later matches overwrite earlier ones for the same bound. Unparsable
// numeric tokens are skipped, leaving the prior bound intact; extraction
// never fails hard.
func ExtractPriceRange(normalized string, prior pkg.PriceRange) (pkg.PriceRange, bool) {
	words := strings.Fields(normalized)
	r := prior
	matched := false

	for i := 0; i+3 < len(words); i++ {
		pair := (words[i] == "from" && words[i+2] == "to") ||
			(words[i] == "between" && words[i+2] == "and")
		if !pair {
			continue
		}
		lo, okLo := parseAmount(words[i+1])
		hi, okHi := parseAmount(words[i+3])
		if okLo && okHi {
			r.Low, r.High = lo, hi
			matched = true
		}
	}

	for i := 0; i+1 < len(words); i++ {
		switch words[i] {
		case "below", "under":
			if v, ok := parseAmount(words[i+1]); ok {
				r.High = v
				matched = true
			}
		case "above":
			if v, ok := parseAmount(words[i+1]); ok {
				r.Low = v
				matched = true
			}
		}
	}

	for i := 0; i+2 < len(words); i++ {
		if words[i+1] != "than" {
			continue
		}
		switch words[i] {
		case "higher":
			if v, ok := parseAmount(words[i+2]); ok {
				r.High = v
				matched = true
			}
		case "lower":
			if v, ok := parseAmount(words[i+2]); ok {
				r.Low = v
				matched = true
			}
		}
	}

	return r, matched
}
