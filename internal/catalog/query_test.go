package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbot/pkg"
)

func queryCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New([]Entry{
		{Name: "Phone A", Brand: "acme", Category: CategoryPhone, Price: 10},
		{Name: "Phone B", Brand: "bolt", Category: CategoryPhone, Price: 20},
		{Name: "Phone C", Brand: "core", Category: CategoryPhone, Price: 30},
		{Name: "Laptop D", Brand: "bolt", Category: CategoryComputer, Price: 40},
		{Name: "Drone E", Brand: "acme", Category: CategoryDrone, Price: 50},
	})
	require.NoError(t, err)
	return c
}

func TestSearchByCategoryCountsBrands(t *testing.T) {
	c := queryCatalog(t)

	res := c.Search(context.Background(), Query{
		Category: CategoryPhone, HasCategory: true, Price: pkg.NewPriceRange(),
	})
	assert.Len(t, res.Rows, 3)
	assert.Len(t, res.Brands, 3)
	assert.Len(t, res.Categories, 1)
}

func TestSearchByBrandCountsCategories(t *testing.T) {
	c := queryCatalog(t)

	res := c.Search(context.Background(), Query{
		Brand: "acme", HasBrand: true, Price: pkg.NewPriceRange(),
	})
	assert.Len(t, res.Rows, 2)
	assert.Equal(t, []Category{CategoryPhone, CategoryDrone}, res.Categories)
	assert.Equal(t, []string{"acme"}, res.Brands)
}

func TestSearchBothSlots(t *testing.T) {
	c := queryCatalog(t)

	res := c.Search(context.Background(), Query{
		Category: CategoryPhone, HasCategory: true,
		Brand: "bolt", HasBrand: true,
		Price: pkg.NewPriceRange(),
	})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Phone B", res.Rows[0].Name)
}

func TestSearchNeitherSlotIsEmpty(t *testing.T) {
	c := queryCatalog(t)

	res := c.Search(context.Background(), Query{Price: pkg.NewPriceRange()})
	assert.Empty(t, res.Rows)
	assert.Empty(t, res.Categories)
	assert.Empty(t, res.Brands)
}

func TestSearchPriceBoundsAreStrict(t *testing.T) {
	c := queryCatalog(t)

	res := c.Search(context.Background(), Query{
		Category: CategoryPhone, HasCategory: true,
		Price: pkg.PriceRange{Low: 10, High: 30},
	})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Phone B", res.Rows[0].Name)
}

func TestFilterRefinesSubset(t *testing.T) {
	c := queryCatalog(t)

	first := c.Search(context.Background(), Query{
		Category: CategoryPhone, HasCategory: true, Price: pkg.NewPriceRange(),
	})
	refined := Filter(first.Rows, Query{
		Category: CategoryPhone, HasCategory: true,
		Brand: "core", HasBrand: true,
		Price: pkg.NewPriceRange(),
	})
	require.Len(t, refined.Rows, 1)
	assert.Equal(t, "Phone C", refined.Rows[0].Name)
}

func TestBrandStats(t *testing.T) {
	c := queryCatalog(t)
	res := c.Search(context.Background(), Query{
		Category: CategoryPhone, HasCategory: true, Price: pkg.NewPriceRange(),
	})

	stats := BrandStats(res.Rows)
	require.Len(t, stats, 3)
	assert.Equal(t, BrandStat{Brand: "acme", Count: 1, MinPrice: 10, MaxPrice: 10}, stats[0])
}

func TestCategoryStats(t *testing.T) {
	c := queryCatalog(t)
	stats := CategoryStats(RowsInRange(c.Entries(), pkg.NewPriceRange()))

	require.Len(t, stats, 3)
	// fixed category order
	assert.Equal(t, CategoryComputer, stats[0].Category)
	assert.Equal(t, CategoryPhone, stats[1].Category)
	assert.Equal(t, 3, stats[1].Count)
	assert.Equal(t, CategoryDrone, stats[2].Category)
}
