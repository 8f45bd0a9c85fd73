// internal/domain/catalog/pipeline_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPageSize = 8

func testSnapshot() []Product {
	return []Product{
		{ID: 1, Name: "Classic Dancing Doll", Description: "Hand-painted dancing doll", Price: 2499, Rating: 4.8, Popularity: 95, Category: Category{Name: "Dancing Dolls", Slug: "dancing-dolls"}},
		{ID: 2, Name: "Royal Elephant", Description: "Caparisoned elephant", Price: 3499, Rating: 4.7, Popularity: 92, Category: Category{Name: "Animals & Birds", Slug: "animals-birds"}},
		{ID: 3, Name: "Peacock Pair", Description: "Colorful peacock pair", Price: 2899, Rating: 4.6, Popularity: 78, Category: Category{Name: "Animals & Birds", Slug: "animals-birds"}},
		{ID: 4, Name: "Dashavatara Set", Description: "Ten avatar set", Price: 8999, Rating: 5.0, Popularity: 85, Category: Category{Name: "Mythological", Slug: "mythological"}},
		{ID: 5, Name: "Little Krishna", Description: "Baby Krishna with butter pot", Price: 1799, Rating: 4.8, Popularity: 90, Category: Category{Name: "Mythological", Slug: "mythological"}},
		{ID: 6, Name: "Bullock Cart", Description: "Working cart with rolling wheels", Price: 3299, Rating: 4.4, Popularity: 55, Category: Category{Name: "Vehicles", Slug: "vehicles"}},
		{ID: 7, Name: "Auto Rickshaw", Description: "Bright enamel three-wheeler", Price: 2299, Rating: 4.3, Popularity: 48, Category: Category{Name: "Vehicles", Slug: "vehicles"}},
		{ID: 8, Name: "Wall Hanging", Description: "Dolls and parrots on cord", Price: 1599, Rating: 4.2, Popularity: 42, Category: Category{Name: "Home Decor", Slug: "home-decor"}},
		{ID: 9, Name: "Temple Set", Description: "Carved temple facade", Price: 5499, Rating: 4.9, Popularity: 70, Category: Category{Name: "Home Decor", Slug: "home-decor"}},
		{ID: 10, Name: "Mini Dancing Doll", Description: "Pocket-sized dancing doll", Price: 999, Rating: 4.1, Popularity: 82, Category: Category{Name: "Dancing Dolls", Slug: "dancing-dolls"}},
	}
}

func productIDs(products []Product) []uint {
	ids := make([]uint, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestBrowseDefaultState(t *testing.T) {
	result := Browse(testSnapshot(), FilterState{Page: 1}, testPageSize)

	assert.Equal(t, 10, result.Total)
	assert.Equal(t, 8, result.Showing)
	assert.Equal(t, ViewGrid, result.View)
	assert.Equal(t, 2, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext)
	assert.False(t, result.Pagination.HasPrev)

	// Default sort is popularity, highest first
	assert.Equal(t, []uint{1, 2, 5, 4, 10, 3, 9, 6}, productIDs(result.Products))
}

func TestBrowseCategoryFilter(t *testing.T) {
	result := Browse(testSnapshot(), FilterState{Category: "animals-birds", Page: 1}, testPageSize)

	assert.Equal(t, 2, result.Total)
	assert.ElementsMatch(t, []uint{2, 3}, productIDs(result.Products))
}

func TestBrowseUnknownCategoryMatchesNothing(t *testing.T) {
	result := Browse(testSnapshot(), FilterState{Category: "no-such-category", Page: 1}, testPageSize)

	assert.Zero(t, result.Total)
	assert.Empty(t, result.Products)
	assert.Nil(t, result.Controls)
}

func TestBrowsePriceFilter(t *testing.T) {
	tests := []struct {
		name       string
		priceRange string
		wantIDs    []uint
	}{
		{
			name:       "bounded range includes both ends",
			priceRange: "20-30",
			wantIDs:    []uint{1, 3, 7},
		},
		{
			name:       "open ended range",
			priceRange: "50-",
			wantIDs:    []uint{4, 9},
		},
		{
			name:       "unparseable token filters nothing",
			priceRange: "cheap",
			wantIDs:    []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
		{
			name:       "all token filters nothing",
			priceRange: "all",
			wantIDs:    []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Browse(testSnapshot(), FilterState{PriceRange: tt.priceRange, Page: 1}, 100)
			assert.ElementsMatch(t, tt.wantIDs, productIDs(result.Products))
		})
	}
}

func TestBrowsePriceFilterFractionalBounds(t *testing.T) {
	snapshot := []Product{
		{ID: 1, Name: "Exact Cent Item", Price: 2999},
		{ID: 2, Name: "Cheaper Item", Price: 2998},
		{ID: 3, Name: "Pricier Item", Price: 3000},
	}

	// Bounds in fractional currency units land on exact cents
	exact := Browse(snapshot, FilterState{PriceRange: "29.99-29.99", Page: 1}, testPageSize)
	assert.Equal(t, []uint{1}, productIDs(exact.Products))

	openEnded := Browse(snapshot, FilterState{PriceRange: "29.99-", Page: 1}, testPageSize)
	assert.ElementsMatch(t, []uint{1, 3}, productIDs(openEnded.Products))
}

func TestBrowseSearchMatchesNameDescriptionAndCategory(t *testing.T) {
	byName := Browse(testSnapshot(), FilterState{Search: "krishna", Page: 1}, testPageSize)
	assert.Equal(t, []uint{5}, productIDs(byName.Products))

	byDescription := Browse(testSnapshot(), FilterState{Search: "rolling wheels", Page: 1}, testPageSize)
	assert.Equal(t, []uint{6}, productIDs(byDescription.Products))

	byCategory := Browse(testSnapshot(), FilterState{Search: "home decor", Page: 1}, testPageSize)
	assert.ElementsMatch(t, []uint{8, 9}, productIDs(byCategory.Products))

	caseInsensitive := Browse(testSnapshot(), FilterState{Search: "  KRISHNA ", Page: 1}, testPageSize)
	assert.Equal(t, []uint{5}, productIDs(caseInsensitive.Products))
}

func TestBrowseSortOrders(t *testing.T) {
	tests := []struct {
		sortBy  string
		wantIDs []uint
	}{
		{SortPriceLow, []uint{10, 8, 5, 7, 1, 3, 6, 2, 9, 4}},
		{SortPriceHigh, []uint{4, 9, 2, 6, 3, 1, 7, 5, 8, 10}},
		{SortName, []uint{7, 6, 1, 4, 5, 10, 3, 2, 9, 8}},
		{SortRating, []uint{4, 9, 1, 5, 2, 3, 6, 7, 8, 10}},
		{SortPopularity, []uint{1, 2, 5, 4, 10, 3, 9, 6, 7, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			result := Browse(testSnapshot(), FilterState{SortBy: tt.sortBy, Page: 1}, 100)
			assert.Equal(t, tt.wantIDs, productIDs(result.Products))
		})
	}
}

func TestFiltersCommute(t *testing.T) {
	snapshot := testSnapshot()

	categoryFirst := filterByPrice(filterByCategory(snapshot, "animals-birds"), "25-40")
	priceFirst := filterByCategory(filterByPrice(snapshot, "25-40"), "animals-birds")

	assert.Equal(t, productIDs(categoryFirst), productIDs(priceFirst))

	searchFirst := filterByCategory(filterBySearch(snapshot, "doll"), "dancing-dolls")
	categoryThenSearch := filterBySearch(filterByCategory(snapshot, "dancing-dolls"), "doll")

	assert.Equal(t, productIDs(categoryThenSearch), productIDs(searchFirst))
}

func TestBrowseStableSortKeepsCatalogOrderForTies(t *testing.T) {
	snapshot := []Product{
		{ID: 1, Name: "A", Price: 1000, Popularity: 50},
		{ID: 2, Name: "B", Price: 1000, Popularity: 50},
		{ID: 3, Name: "C", Price: 1000, Popularity: 50},
	}

	result := Browse(snapshot, FilterState{SortBy: SortPriceLow, Page: 1}, testPageSize)
	assert.Equal(t, []uint{1, 2, 3}, productIDs(result.Products))
}

func TestBrowseDoesNotMutateSnapshot(t *testing.T) {
	snapshot := testSnapshot()
	Browse(snapshot, FilterState{SortBy: SortPriceHigh, Page: 1}, testPageSize)

	assert.Equal(t, []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, productIDs(snapshot))
}

func TestBrowsePagesPartitionResults(t *testing.T) {
	var seen []uint
	page := 1
	for {
		result := Browse(testSnapshot(), FilterState{Page: page}, 3)
		seen = append(seen, productIDs(result.Products)...)
		if !result.Pagination.HasNext {
			break
		}
		page++
	}

	// Walking every page yields each product exactly once
	assert.Len(t, seen, 10)
	assert.ElementsMatch(t, []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, seen)
}

func TestBrowsePageClamping(t *testing.T) {
	tooHigh := Browse(testSnapshot(), FilterState{Page: 99}, testPageSize)
	assert.Equal(t, 2, tooHigh.Pagination.Page)
	assert.Equal(t, 2, tooHigh.Showing)

	tooLow := Browse(testSnapshot(), FilterState{Page: -5}, testPageSize)
	assert.Equal(t, 1, tooLow.Pagination.Page)

	empty := Browse(nil, FilterState{Page: 3}, testPageSize)
	assert.Equal(t, 1, empty.Pagination.Page)
	assert.Equal(t, 1, empty.Pagination.TotalPages)
}

func TestBrowseViewFallsBackToGrid(t *testing.T) {
	list := Browse(testSnapshot(), FilterState{View: ViewList, Page: 1}, testPageSize)
	assert.Equal(t, ViewList, list.View)

	bogus := Browse(testSnapshot(), FilterState{View: "carousel", Page: 1}, testPageSize)
	assert.Equal(t, ViewGrid, bogus.View)
}

func TestBuildPageControlsSinglePage(t *testing.T) {
	assert.Nil(t, buildPageControls(1, 1))
	assert.Nil(t, buildPageControls(1, 0))
}

func TestBuildPageControlsShortStrip(t *testing.T) {
	controls := buildPageControls(1, 2)
	require.Len(t, controls, 4)

	assert.Equal(t, "prev", controls[0].Type)
	assert.True(t, controls[0].Disabled)
	assert.Equal(t, PageControl{Type: "page", Page: 1, Active: true}, controls[1])
	assert.Equal(t, PageControl{Type: "page", Page: 2}, controls[2])
	assert.Equal(t, "next", controls[3].Type)
	assert.False(t, controls[3].Disabled)
}

func TestBuildPageControlsMiddleOfLongStrip(t *testing.T) {
	controls := buildPageControls(5, 9)

	// prev, 1, dots, 4, 5, 6, dots, 9, next
	want := []PageControl{
		{Type: "prev", Page: 4},
		{Type: "page", Page: 1},
		{Type: "dots"},
		{Type: "page", Page: 4},
		{Type: "page", Page: 5, Active: true},
		{Type: "page", Page: 6},
		{Type: "dots"},
		{Type: "page", Page: 9},
		{Type: "next", Page: 6},
	}
	assert.Equal(t, want, controls)
}

func TestBuildPageControlsLastPageDisablesNext(t *testing.T) {
	controls := buildPageControls(3, 3)
	require.NotEmpty(t, controls)

	next := controls[len(controls)-1]
	assert.Equal(t, "next", next.Type)
	assert.True(t, next.Disabled)
}
