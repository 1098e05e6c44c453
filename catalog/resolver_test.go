package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/listera/ai/mock"
	"github.com/poiesic/listera/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []core.Category {
	return []core.Category{
		{
			ID:   "10",
			Name: "Electronics",
			Children: []core.Category{
				{
					ID:   "11",
					Name: "Phones",
				},
				{
					ID:   "12",
					Name: "Computers",
					Children: []core.Category{
						{ID: "13", Name: "Laptops"},
					},
				},
			},
		},
		{ID: "20", Name: "Fashion"},
	}
}

func newTestResolver(t *testing.T, gen *mock.Generator) *Resolver {
	t.Helper()
	r, err := NewResolver(gen)
	require.NoError(t, err)
	return r
}

func TestResolvePreconditions(t *testing.T) {
	r := newTestResolver(t, mock.NewGenerator())

	t.Run("empty catalog", func(t *testing.T) {
		_, err := r.Resolve(context.Background(), "iPhone", "Apple", nil, testBrands())
		assert.ErrorIs(t, err, ErrEmptyCatalog)
	})

	t.Run("empty brand list", func(t *testing.T) {
		_, err := r.Resolve(context.Background(), "iPhone", "Apple", testCatalog(), nil)
		assert.ErrorIs(t, err, ErrEmptyBrandList)
	})
}

func TestResolveCategoryWithoutGrandchildren(t *testing.T) {
	// Electronics -> Phones has no further children, so only two AI
	// calls run and the sub-sub level stays unset.
	gen := mock.NewGenerator().
		Respond(`{"id":"10","name":"Electronics"}`).
		Respond(`{"id":"11","name":"Phones"}`)
	r := newTestResolver(t, gen)

	sel, err := r.Resolve(context.Background(), "iPhone 17 Pro", "Apple", testCatalog(), testBrands())
	require.NoError(t, err)

	assert.Equal(t, "10", sel.CategoryID)
	assert.Equal(t, "11", sel.SubCategoryID)
	assert.Empty(t, sel.SubSubCategoryID)
	assert.Equal(t, 2, sel.BrandID)
	assert.Equal(t, 2, gen.CallCount())
	require.NoError(t, core.ValidateSelection(sel))
}

func TestResolveFullHierarchy(t *testing.T) {
	gen := mock.NewGenerator().
		Respond(`{"id":"10","name":"Electronics"}`).
		Respond(`{"id":"12","name":"Computers"}`).
		Respond(`{"id":"13","name":"Laptops"}`)
	r := newTestResolver(t, gen)

	sel, err := r.Resolve(context.Background(), "MacBook Pro", "Apple", testCatalog(), testBrands())
	require.NoError(t, err)

	assert.Equal(t, "10", sel.CategoryID)
	assert.Equal(t, "12", sel.SubCategoryID)
	assert.Equal(t, "13", sel.SubSubCategoryID)
	assert.Equal(t, "Laptops", sel.SubSubCategoryName)
	require.NoError(t, core.ValidateSelection(sel))
}

func TestResolveStageAFailureLeavesSentinel(t *testing.T) {
	gen := mock.NewGenerator().Fail(errors.New("service down"))
	r := newTestResolver(t, gen)

	sel, err := r.Resolve(context.Background(), "iPhone", "Apple", testCatalog(), testBrands())
	require.NoError(t, err, "selection failures never fail resolution")

	assert.Equal(t, core.DefaultCategoryID, sel.CategoryID)
	assert.Empty(t, sel.SubCategoryID)
	assert.Empty(t, sel.SubSubCategoryID)
	assert.Equal(t, 2, sel.BrandID, "brand still resolved deterministically")
	assert.Equal(t, 1, gen.CallCount(), "narrowing halts after the failed stage")
}

func TestResolveStageBFailureKeepsCategory(t *testing.T) {
	gen := mock.NewGenerator().
		Respond(`{"id":"10","name":"Electronics"}`).
		Respond(`not json`)
	r := newTestResolver(t, gen)

	sel, err := r.Resolve(context.Background(), "iPhone", "Apple", testCatalog(), testBrands())
	require.NoError(t, err)

	assert.Equal(t, "10", sel.CategoryID)
	assert.Empty(t, sel.SubCategoryID)
	assert.Equal(t, 2, gen.CallCount())
	require.NoError(t, core.ValidateSelection(sel))
}

func TestResolveLeafCategorySkipsDeeperStages(t *testing.T) {
	// Fashion has no children at all: one call, category only.
	gen := mock.NewGenerator().Respond(`{"id":"20","name":"Fashion"}`)
	r := newTestResolver(t, gen)

	sel, err := r.Resolve(context.Background(), "Кроссовки Nike", "Nike", testCatalog(), testBrands())
	require.NoError(t, err)

	assert.Equal(t, "20", sel.CategoryID)
	assert.Empty(t, sel.SubCategoryID)
	assert.Equal(t, 1, gen.CallCount())
}

func TestResolveSelectionWithoutIDIgnored(t *testing.T) {
	gen := mock.NewGenerator().Respond(`{"name":"Electronics"}`)
	r := newTestResolver(t, gen)

	sel, err := r.Resolve(context.Background(), "iPhone", "Apple", testCatalog(), testBrands())
	require.NoError(t, err)
	assert.Equal(t, core.DefaultCategoryID, sel.CategoryID)
}

func TestResolveNarrowsOptionSetPerStage(t *testing.T) {
	gen := mock.NewGenerator().
		Respond(`{"id":"10","name":"Electronics"}`).
		Respond(`{"id":"12","name":"Computers"}`).
		Respond(`{"id":"13","name":"Laptops"}`)
	r := newTestResolver(t, gen)

	_, err := r.Resolve(context.Background(), "MacBook Pro", "Apple", testCatalog(), testBrands())
	require.NoError(t, err)

	calls := gen.Calls()
	require.Len(t, calls, 3)
	// Stage A sees only top-level categories.
	assert.Contains(t, calls[0].User, "Electronics")
	assert.Contains(t, calls[0].User, "Fashion")
	assert.NotContains(t, calls[0].User, "Laptops")
	// Stage B sees only Electronics' children.
	assert.Contains(t, calls[1].User, "Phones")
	assert.Contains(t, calls[1].User, "Computers")
	assert.NotContains(t, calls[1].User, "Fashion")
	// Stage C sees only Computers' children.
	assert.Contains(t, calls[2].User, "Laptops")
	assert.NotContains(t, calls[2].User, "Phones")
}

func TestNewResolverRequiresGenerator(t *testing.T) {
	_, err := NewResolver(nil)
	assert.ErrorIs(t, err, ErrGeneratorRequired)
}
