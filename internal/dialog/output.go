package dialog

import (
	"sort"
	"strconv"

	"shopbot/internal/catalog"
	"shopbot/pkg"
)

// Table is a rendered-agnostic result set. The engine never formats tables
// itself; the caller decides how to draw them.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// TurnOutput is what one conversation turn produces.
type TurnOutput struct {
	Message string  `json:"message"`
	Tables  []Table `json:"tables,omitempty"`
	Done    bool    `json:"done"`
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func categoryTable(stats []catalog.CategoryStat) Table {
	t := Table{Columns: []string{"category", "items"}}
	for _, s := range stats {
		t.Rows = append(t.Rows, []string{s.Category.Label(), strconv.Itoa(s.Count)})
	}
	return t
}

func brandTable(stats []catalog.BrandStat) Table {
	t := Table{Columns: []string{"brand", "items", "min price", "max price"}}
	for _, s := range stats {
		t.Rows = append(t.Rows, []string{
			s.Brand,
			strconv.Itoa(s.Count),
			formatPrice(s.MinPrice),
			formatPrice(s.MaxPrice),
		})
	}
	return t
}

func productTable(rows []catalog.Entry, limit int) Table {
	t := Table{Columns: []string{"#", "name", "brand", "price"}}
	for i, e := range rows {
		if limit > 0 && i >= limit {
			break
		}
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(e.Index),
			e.Name,
			e.Brand,
			formatPrice(e.Price),
		})
	}
	return t
}

// sortedRows orders product rows for display. Default is most expensive
// first; a "cheap" adjective flips the order.
func sortedRows(rows []catalog.Entry, mode pkg.SortMode) []catalog.Entry {
	out := make([]catalog.Entry, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		if mode == pkg.SortCheapFirst {
			return out[i].Price < out[j].Price
		}
		return out[i].Price > out[j].Price
	})
	return out
}
