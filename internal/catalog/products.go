// Package catalog is the query engine: pure filtering, sorting and
// selection over product and order slices passed in by the caller. Inputs
// are never mutated and there is no package-level state, so any data source
// can feed it.
package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/saimonkat/supplement-store/internal/domain"
)

// FilterProducts applies every set criterion as an independent predicate,
// ANDed together. Unset criteria are no constraint; an empty query returns
// the input contents in their original order.
func FilterProducts(products []domain.Product, q domain.ProductQuery) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	for _, p := range products {
		if q.Category != "" && string(p.Category) != q.Category {
			continue
		}
		if q.MinPrice != nil && p.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			continue
		}
		if q.IsBestSeller != nil && p.IsBestSeller != *q.IsBestSeller {
			continue
		}
		if q.InStock != nil && p.InStock != *q.InStock {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortProducts returns a sorted copy. The comparators are proper three-way
// comparisons so equal keys keep their relative input order under the
// stable sort. An unknown field returns the copy unsorted.
func SortProducts(products []domain.Product, field domain.ProductSortField, dir domain.SortDirection) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)

	var cmp func(a, b domain.Product) int
	switch field {
	case domain.SortByPrice:
		cmp = func(a, b domain.Product) int { return cmpFloat(a.Price, b.Price) }
	case domain.SortByName:
		cmp = func(a, b domain.Product) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case domain.SortByRating:
		cmp = func(a, b domain.Product) int { return cmpFloat(a.Rating, b.Rating) }
	case domain.SortByCreatedAt:
		cmp = func(a, b domain.Product) int { return cmpTimestamp(a.CreatedAt, b.CreatedAt) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if dir == domain.Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// BestSellers picks flagged products ordered by rating descending,
// truncated to limit. A limit of zero or less defaults to 4.
func BestSellers(products []domain.Product, limit int) []domain.Product {
	if limit <= 0 {
		limit = 4
	}
	flagged := true
	out := SortProducts(FilterProducts(products, domain.ProductQuery{IsBestSeller: &flagged}),
		domain.SortByRating, domain.Desc)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SearchProducts matches q case-insensitively against name, description or
// category. A blank query returns the input unchanged.
func SearchProducts(products []domain.Product, q string) []domain.Product {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return products
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(string(p.Category)), needle) {
			out = append(out, p)
		}
	}
	return out
}

func ProductsByCategory(products []domain.Product, category string) []domain.Product {
	return FilterProducts(products, domain.ProductQuery{Category: category})
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// cmpTimestamp compares RFC3339 strings as instants. Rows that fail to
// parse fall back to raw string order so the result stays deterministic.
func cmpTimestamp(a, b string) int {
	ta, errA := time.Parse(time.RFC3339, a)
	tb, errB := time.Parse(time.RFC3339, b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	switch {
	case ta.Before(tb):
		return -1
	case ta.After(tb):
		return 1
	default:
		return 0
	}
}
