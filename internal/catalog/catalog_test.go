package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSV(t *testing.T) {
	c, err := LoadCSV("testdata/catalog.csv")
	require.NoError(t, err)

	entries := c.Entries()
	require.Len(t, entries, 5)

	// source labels remapped, brands lower-cased, indexes positional
	assert.Equal(t, CategoryPhone, entries[0].Category)
	assert.Equal(t, "acme", entries[0].Brand)
	assert.Equal(t, 0, entries[0].Index)
	assert.Equal(t, CategoryComputer, entries[3].Category)
	assert.Equal(t, 3, entries[3].Index)
	assert.Equal(t, 40.0, entries[3].Price)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV("testdata/nope.csv")
	assert.Error(t, err)
}

func TestBrandSets(t *testing.T) {
	c, err := LoadCSV("testdata/catalog.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"acme", "bolt", "core"}, c.Brands(CategoryPhone))
	assert.Equal(t, []string{"bolt"}, c.Brands(CategoryComputer))
	assert.Equal(t, []string{"acme", "bolt", "core"}, c.AllBrands())

	assert.True(t, c.IsBrand("acme"))
	assert.True(t, c.IsBrand("Acme"))
	assert.False(t, c.IsBrand("phone"))
}

func TestNewRejectsUnknownCategory(t *testing.T) {
	_, err := New([]Entry{{Name: "X", Brand: "b", Category: "gadget", Price: 1}})
	assert.Error(t, err)
}

func TestCategoryLabelMapping(t *testing.T) {
	for _, c := range Categories {
		got, ok := ParseCategory(string(c))
		assert.True(t, ok)
		assert.Equal(t, c, got)

		// display labels resolve back through the source-label parser
		fromLabel, ok := parseSourceLabel(c.Label())
		assert.True(t, ok)
		assert.Equal(t, c, fromLabel)
	}
}
