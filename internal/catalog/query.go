package catalog

import (
	"context"

	"shopbot/pkg"
)

// Query selects catalog rows by optional category and brand within a price
// range. Unset slots carry their Has* flag unset.
type Query struct {
	Category    Category
	HasCategory bool
	Brand       string
	HasBrand    bool
	Price       pkg.PriceRange
}

// QueryResult is a filtered row set plus the distinct categories and brands
// present in it. Results are recomputed every turn, never cached, because
// either slot may change between turns.
type QueryResult struct {
	Rows       []Entry
	Categories []Category // distinct, in row order
	Brands     []string   // distinct, in row order
}

// Search runs the query against the full catalog.
func (c *Catalog) Search(ctx context.Context, q Query) QueryResult {
	return Filter(c.entries, q)
}

// Filter runs the query against an arbitrary row subset, supporting
// incremental refinement of a previous result. A query with neither category
// nor brand set returns an empty result.
func Filter(rows []Entry, q Query) QueryResult {
	var res QueryResult
	if !q.HasCategory && !q.HasBrand {
		return res
	}
	seenCat := map[Category]struct{}{}
	seenBrand := map[string]struct{}{}
	for _, e := range rows {
		if q.HasCategory && e.Category != q.Category {
			continue
		}
		if q.HasBrand && e.Brand != q.Brand {
			continue
		}
		if !q.Price.Contains(e.Price) {
			continue
		}
		res.Rows = append(res.Rows, e)
		if _, ok := seenCat[e.Category]; !ok {
			seenCat[e.Category] = struct{}{}
			res.Categories = append(res.Categories, e.Category)
		}
		if _, ok := seenBrand[e.Brand]; !ok {
			seenBrand[e.Brand] = struct{}{}
			res.Brands = append(res.Brands, e.Brand)
		}
	}
	return res
}

// RowsInRange returns the rows whose price falls inside the range,
// independent of category and brand.
func RowsInRange(rows []Entry, pr pkg.PriceRange) []Entry {
	var out []Entry
	for _, e := range rows {
		if pr.Contains(e.Price) {
			out = append(out, e)
		}
	}
	return out
}

// BrandStat summarizes one brand inside a row set.
type BrandStat struct {
	Brand    string
	Count    int
	MinPrice float64
	MaxPrice float64
}

// BrandStats aggregates a row set per brand, in row order.
func BrandStats(rows []Entry) []BrandStat {
	idx := map[string]int{}
	var stats []BrandStat
	for _, e := range rows {
		i, ok := idx[e.Brand]
		if !ok {
			idx[e.Brand] = len(stats)
			stats = append(stats, BrandStat{Brand: e.Brand, Count: 1, MinPrice: e.Price, MaxPrice: e.Price})
			continue
		}
		stats[i].Count++
		if e.Price < stats[i].MinPrice {
			stats[i].MinPrice = e.Price
		}
		if e.Price > stats[i].MaxPrice {
			stats[i].MaxPrice = e.Price
		}
	}
	return stats
}

// CategoryStat summarizes one category inside a row set.
type CategoryStat struct {
	Category Category
	Count    int
}

// CategoryStats aggregates a row set per category, in fixed category order.
func CategoryStats(rows []Entry) []CategoryStat {
	counts := map[Category]int{}
	for _, e := range rows {
		counts[e.Category]++
	}
	var stats []CategoryStat
	for _, c := range Categories {
		if counts[c] > 0 {
			stats = append(stats, CategoryStat{Category: c, Count: counts[c]})
		}
	}
	return stats
}
