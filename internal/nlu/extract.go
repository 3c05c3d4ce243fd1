package nlu

import (
	"shopbot/internal/catalog"
	"shopbot/pkg"
)

// ExtractCategory returns the first token that names a catalog category.
// Operates on negation-filtered tokens.
func ExtractCategory(tokens []pkg.Token) (catalog.Category, bool) {
	for _, t := range tokens {
		if c, ok := catalog.ParseCategory(t.Lemma); ok {
			return c, true
		}
	}
	return "", false
}

// ExtractBrand returns the first token that is a member of the catalog's
// distinct brand set. Operates on negation-filtered tokens.
func ExtractBrand(tokens []pkg.Token, c *catalog.Catalog) (string, bool) {
	for _, t := range tokens {
		if c.IsBrand(t.Lemma) {
			return t.Lemma, true
		}
		if c.IsBrand(t.Text) {
			return t.Text, true
		}
	}
	return "", false
}

// ExtractSearchType detects a declared browse preference. Checked on the
// unfiltered token sequence; "category" wins when both appear.
func ExtractSearchType(tokens []pkg.Token) (pkg.SearchType, bool) {
	var brand bool
	for _, t := range tokens {
		switch t.Lemma {
		case "category":
			return pkg.SearchByCategory, true
		case "brand":
			brand = true
		}
	}
	if brand {
		return pkg.SearchByBrand, true
	}
	return "", false
}

// Adjectives that steer result ordering.
var sortAdjectives = map[string]pkg.SortMode{
	"good":          pkg.SortExpensiveFirst,
	"best":          pkg.SortExpensiveFirst,
	"fancy":         pkg.SortExpensiveFirst,
	"cheap":         pkg.SortCheapFirst,
	"cheapest":      pkg.SortCheapFirst,
	"non-expensive": pkg.SortCheapFirst,
	"in-expensive":  pkg.SortCheapFirst,
	"inexpensive":   pkg.SortCheapFirst,
}

// ExtractSortMode picks up a price-ordering adjective, first match wins.
func ExtractSortMode(tokens []pkg.Token) (pkg.SortMode, bool) {
	for _, t := range tokens {
		if m, ok := sortAdjectives[t.Lemma]; ok {
			return m, true
		}
		if m, ok := sortAdjectives[t.Text]; ok {
			return m, true
		}
	}
	return "", false
}
