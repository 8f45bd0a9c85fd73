// internal/domain/catalog/pipeline.go
package catalog

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Filter values accepted by the browse pipeline
const (
	FilterAll = "all"

	SortPopularity = "popularity"
	SortPriceLow   = "price-low"
	SortPriceHigh  = "price-high"
	SortName       = "name"
	SortRating     = "rating"

	ViewGrid = "grid"
	ViewList = "list"
)

// FilterState represents the browse query parameters
type FilterState struct {
	Category   string `form:"category,default=all"`
	PriceRange string `form:"price,default=all"`
	SortBy     string `form:"sort,default=popularity"`
	Search     string `form:"search"`
	View       string `form:"view,default=grid"`
	Page       int    `form:"page,default=1"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// PageControl is one element of the rendered pagination strip
type PageControl struct {
	Type     string `json:"type"` // prev, page, dots, next
	Page     int    `json:"page,omitempty"`
	Active   bool   `json:"active,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// BrowseResult is one page of the filtered catalog
type BrowseResult struct {
	Products   []Product     `json:"products"`
	Showing    int           `json:"showing"`
	Total      int           `json:"total"`
	View       string        `json:"view"`
	Pagination Pagination    `json:"pagination"`
	Controls   []PageControl `json:"controls"`
}

// Browse runs the full pipeline against a catalog snapshot: category,
// price and search filters, stable sort, then pagination. The snapshot
// slice is never mutated.
func Browse(snapshot []Product, state FilterState, pageSize int) BrowseResult {
	filtered := filterByCategory(snapshot, state.Category)
	filtered = filterByPrice(filtered, state.PriceRange)
	filtered = filterBySearch(filtered, state.Search)
	sortProducts(filtered, state.SortBy)

	page := clampPage(state.Page, len(filtered), pageSize)
	items, pagination := paginate(filtered, page, pageSize)

	view := state.View
	if view != ViewList {
		view = ViewGrid
	}

	return BrowseResult{
		Products:   items,
		Showing:    len(items),
		Total:      len(filtered),
		View:       view,
		Pagination: pagination,
		Controls:   buildPageControls(pagination.Page, pagination.TotalPages),
	}
}

func filterByCategory(products []Product, category string) []Product {
	if category == "" || category == FilterAll {
		return append([]Product(nil), products...)
	}
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category.Slug == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// filterByPrice matches tokens of the form "min-max" or "min-" with
// bounds in whole currency units. Unparseable tokens filter nothing.
func filterByPrice(products []Product, priceRange string) []Product {
	if priceRange == "" || priceRange == FilterAll {
		return products
	}

	parts := strings.SplitN(priceRange, "-", 2)
	min, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return products
	}
	minCents := int64(math.Round(min * 100))

	maxCents := int64(-1)
	if len(parts) == 2 && parts[1] != "" {
		if max, err := strconv.ParseFloat(parts[1], 64); err == nil {
			maxCents = int64(math.Round(max * 100))
		}
	}

	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Price < minCents {
			continue
		}
		if maxCents >= 0 && p.Price > maxCents {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func filterBySearch(products []Product, search string) []Product {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return products
	}
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.Category.Name), term) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// sortProducts sorts in place. The sort is stable so equal keys keep
// their catalog order.
func sortProducts(products []Product, sortBy string) {
	switch sortBy {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortName:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Name < products[j].Name
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Popularity > products[j].Popularity
		})
	}
}

func clampPage(page, total, pageSize int) int {
	if page < 1 {
		return 1
	}
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

func paginate(products []Product, page, pageSize int) ([]Product, Pagination) {
	total := len(products)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := append([]Product(nil), products[start:end]...)
	return items, Pagination{
		Page:       page,
		Limit:      pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// buildPageControls renders the pagination strip: prev, first and last
// pages, the current page and its neighbors, dots for gaps, next.
func buildPageControls(current, totalPages int) []PageControl {
	if totalPages <= 1 {
		return nil
	}

	controls := []PageControl{{
		Type:     "prev",
		Page:     current - 1,
		Disabled: current == 1,
	}}

	for i := 1; i <= totalPages; i++ {
		if i == 1 || i == totalPages || (i >= current-1 && i <= current+1) {
			controls = append(controls, PageControl{
				Type:   "page",
				Page:   i,
				Active: i == current,
			})
		} else if i == current-2 || i == current+2 {
			controls = append(controls, PageControl{Type: "dots"})
		}
	}

	controls = append(controls, PageControl{
		Type:     "next",
		Page:     current + 1,
		Disabled: current == totalPages,
	})
	return controls
}
