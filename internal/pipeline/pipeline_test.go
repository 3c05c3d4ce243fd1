package pipeline

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbot/internal/catalog"
	"shopbot/internal/nlu"
	"shopbot/pkg"
)

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	cat, err := catalog.New([]catalog.Entry{
		{Name: "Phone A", Brand: "acme", Category: catalog.CategoryPhone, Price: 10},
		{Name: "Laptop B", Brand: "bolt", Category: catalog.CategoryComputer, Price: 99},
	})
	require.NoError(t, err)

	norm := nlu.NewNormalizer(nil, nlu.NewFieldsAnnotator(cat.AllBrands()))
	p, err := New(context.Background(), norm, cat, zerolog.Nop())
	require.NoError(t, err)
	return p
}

func TestAnalyzeFullUtterance(t *testing.T) {
	p := testPipeline(t)

	a, err := p.Analyze(context.Background(), "I want an acme phone under $50")
	require.NoError(t, err)

	assert.Equal(t, "i want an acme phone under $50", a.Normalized)
	assert.True(t, a.Extraction.HasCategory)
	assert.Equal(t, "phone", a.Extraction.Category)
	assert.True(t, a.Extraction.HasBrand)
	assert.Equal(t, "acme", a.Extraction.Brand)
	require.True(t, a.Extraction.HasPrice)
	assert.Equal(t, 50.0, a.Extraction.Price.High)
}

func TestAnalyzeNegationBlocksSlot(t *testing.T) {
	p := testPipeline(t)

	a, err := p.Analyze(context.Background(), "i hate acme but like phones")
	require.NoError(t, err)

	assert.True(t, a.Extraction.HasCategory)
	assert.False(t, a.Extraction.HasBrand)
}

func TestAnalyzeAliasFeedsExtraction(t *testing.T) {
	p := testPipeline(t)

	a, err := p.Analyze(context.Background(), "show me a laptop")
	require.NoError(t, err)

	require.True(t, a.Extraction.HasCategory)
	assert.Equal(t, string(catalog.CategoryComputer), a.Extraction.Category)
}

func TestAnalyzeMetaIntents(t *testing.T) {
	p := testPipeline(t)

	a, err := p.Analyze(context.Background(), "goodbye")
	require.NoError(t, err)
	assert.True(t, a.Extraction.Meta.Quit)

	a, err = p.Analyze(context.Background(), "hello there")
	require.NoError(t, err)
	assert.True(t, a.Extraction.Meta.Greeting)
	assert.Equal(t, pkg.MetaIntents{Greeting: true}, a.Extraction.Meta)
}
