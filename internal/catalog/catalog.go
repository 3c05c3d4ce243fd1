package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Category is one of the fixed product categories.
type Category string

const (
	CategoryComputer Category = "computer"
	CategoryPhone    Category = "phone"
	CategoryHome     Category = "home"
	CategoryDrone    Category = "drone"
	CategoryClock    Category = "clock"
	CategoryGame     Category = "game"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryComputer,
	CategoryPhone,
	CategoryHome,
	CategoryDrone,
	CategoryClock,
	CategoryGame,
}

// categoryLabels maps canonical categories to the labels used in the source
// data and in user-facing tables.
var categoryLabels = map[Category]string{
	CategoryComputer: "Computing",
	CategoryPhone:    "Phones & Tablets",
	CategoryHome:     "Smart Home",
	CategoryDrone:    "Drones",
	CategoryClock:    "Wearables",
	CategoryGame:     "Gaming & VR",
}

// Label returns the human-readable display label for the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// ParseCategory maps a token to a canonical category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(s))
	if _, ok := categoryLabels[c]; ok {
		return c, true
	}
	return "", false
}

// parseSourceLabel maps a raw category label from the data file to its
// canonical category. Already-canonical values pass through.
func parseSourceLabel(s string) (Category, bool) {
	for c, l := range categoryLabels {
		if strings.EqualFold(s, l) {
			return c, true
		}
	}
	return ParseCategory(s)
}

// Entry is one immutable catalog row.
type Entry struct {
	Index    int      `json:"index"` // position in the loaded catalog
	Name     string   `json:"name"`
	Brand    string   `json:"brand"` // lower-cased at ingestion
	Category Category `json:"category"`
	Price    float64  `json:"price"`
}

// Catalog is the read-only ordered product table plus the brand sets derived
// from it. Safe for shared use once built.
type Catalog struct {
	entries  []Entry
	brands   map[Category][]string
	brandSet map[string]struct{}
}

// New builds a catalog from pre-parsed entries.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		brands:   make(map[Category][]string),
		brandSet: make(map[string]struct{}),
	}
	for i, e := range entries {
		if _, ok := categoryLabels[e.Category]; !ok {
			return nil, fmt.Errorf("entry %q: unknown category %q", e.Name, e.Category)
		}
		e.Index = i
		e.Brand = strings.ToLower(e.Brand)
		c.entries = append(c.entries, e)
		if _, seen := c.brandSet[e.Brand]; !seen {
			c.brandSet[e.Brand] = struct{}{}
		}
	}
	for _, cat := range Categories {
		seen := map[string]struct{}{}
		for _, e := range c.entries {
			if e.Category != cat {
				continue
			}
			if _, ok := seen[e.Brand]; ok {
				continue
			}
			seen[e.Brand] = struct{}{}
			c.brands[cat] = append(c.brands[cat], e.Brand)
		}
	}
	return c, nil
}

// Entries returns the full ordered catalog.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Brands returns the distinct brands available in a category, in catalog order.
func (c *Catalog) Brands(cat Category) []string {
	return c.brands[cat]
}

// AllBrands returns every distinct brand in the catalog, sorted.
func (c *Catalog) AllBrands() []string {
	out := make([]string, 0, len(c.brandSet))
	for b := range c.brandSet {
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

// IsBrand reports whether the token is a known brand.
func (c *Catalog) IsBrand(tok string) bool {
	_, ok := c.brandSet[strings.ToLower(tok)]
	return ok
}
