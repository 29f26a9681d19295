package catalog

import (
	"sort"
	"strings"

	"github.com/saimonkat/supplement-store/internal/domain"
)

// FilterOrders applies status, inclusive date range and free-text criteria.
// The text search matches the order id, the customer's full name, or any
// line-item product name.
func FilterOrders(orders []domain.Order, q domain.OrderQuery) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	for _, o := range orders {
		if q.Status != "" && string(o.Status) != q.Status {
			continue
		}
		if q.DateFrom != "" && cmpTimestamp(o.CreatedAt, q.DateFrom) < 0 {
			continue
		}
		if q.DateTo != "" && cmpTimestamp(o.CreatedAt, q.DateTo) > 0 {
			continue
		}
		if needle != "" && !orderMatches(o, needle) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func orderMatches(o domain.Order, needle string) bool {
	if strings.Contains(strings.ToLower(o.ID), needle) {
		return true
	}
	full := strings.ToLower(o.Customer.FirstName + " " + o.Customer.LastName)
	if strings.Contains(full, needle) {
		return true
	}
	for _, it := range o.Items {
		if strings.Contains(strings.ToLower(it.ProductName), needle) {
			return true
		}
	}
	return false
}

// SortOrders returns a sorted copy using three-way comparators under a
// stable sort. Unknown fields return the copy unsorted.
func SortOrders(orders []domain.Order, field domain.OrderSortField, dir domain.SortDirection) []domain.Order {
	out := make([]domain.Order, len(orders))
	copy(out, orders)

	var cmp func(a, b domain.Order) int
	switch field {
	case domain.OrderSortByCreatedAt:
		cmp = func(a, b domain.Order) int { return cmpTimestamp(a.CreatedAt, b.CreatedAt) }
	case domain.OrderSortByTotal:
		cmp = func(a, b domain.Order) int { return cmpFloat(a.Total, b.Total) }
	case domain.OrderSortByStatus:
		cmp = func(a, b domain.Order) int { return strings.Compare(string(a.Status), string(b.Status)) }
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

func OrdersByStatus(orders []domain.Order, status domain.OrderStatus) []domain.Order {
	return FilterOrders(orders, domain.OrderQuery{Status: string(status)})
}

func OrdersByDateRange(orders []domain.Order, from, to string) []domain.Order {
	return FilterOrders(orders, domain.OrderQuery{DateFrom: from, DateTo: to})
}

// Stats aggregates an order list for the admin dashboard.
type Stats struct {
	TotalOrders  int
	TotalRevenue float64
	AverageOrder float64
	StatusCounts map[domain.OrderStatus]int
}

func OrderStats(orders []domain.Order) Stats {
	s := Stats{StatusCounts: map[domain.OrderStatus]int{}}
	for _, o := range orders {
		s.TotalOrders++
		s.TotalRevenue += o.Total
		s.StatusCounts[o.Status]++
	}
	if s.TotalOrders > 0 {
		s.AverageOrder = s.TotalRevenue / float64(s.TotalOrders)
	}
	return s
}
