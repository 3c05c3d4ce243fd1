package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// LoadCSV reads the product table from a CSV file. Columns are positional:
// row id, name, brand, category label, price. The first line is a header and
// is skipped. Category labels are remapped to canonical categories and brands
// are lower-cased.
func LoadCSV(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 5
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("catalog file %s has no data rows", path)
	}

	var entries []Entry
	for i, rec := range records[1:] {
		cat, ok := parseSourceLabel(rec[3])
		if !ok {
			return nil, fmt.Errorf("row %d: unknown category label %q", i+1, rec[3])
		}
		price, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad price %q: %w", i+1, rec[4], err)
		}
		entries = append(entries, Entry{
			Name:     rec[1],
			Brand:    rec[2],
			Category: cat,
			Price:    price,
		})
	}

	return New(entries)
}
