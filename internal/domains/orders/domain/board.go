package domain

import (
	"sort"
	"strings"
	"time"
)

// Filter narrows the board to one status. FilterAll shows every order.
type Filter string

const FilterAll Filter = "ALL"

// ParseFilter maps a query value onto a filter; anything unknown means ALL.
func ParseFilter(raw string) Filter {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" || raw == string(FilterAll) {
		return FilterAll
	}
	if status, err := ParseStatus(raw); err == nil {
		return Filter(status)
	}
	return FilterAll
}

// Matches reports whether an order passes the filter.
func (f Filter) Matches(order Order) bool {
	return f == FilterAll || f == "" || Status(f) == order.Status
}

// Board is the fetched order set of one orders page visit, newest first. It is
// immutable once built; filtering never goes back to the backend.
type Board struct {
	orders          []Order
	deliveryPersons []DeliveryPerson
	fetchedAt       time.Time
}

// NewBoard sorts orders by CreatedAt descending. Equal timestamps keep no
// particular order.
func NewBoard(orders []Order, deliveryPersons []DeliveryPerson, fetchedAt time.Time) *Board {
	sorted := append([]Order(nil), orders...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return &Board{
		orders:          sorted,
		deliveryPersons: append([]DeliveryPerson(nil), deliveryPersons...),
		fetchedAt:       fetchedAt,
	}
}

// Orders returns the full fetched set.
func (b *Board) Orders() []Order {
	if b == nil {
		return nil
	}
	return append([]Order(nil), b.orders...)
}

// View applies a filter to the fetched set.
func (b *Board) View(filter Filter) []Order {
	if b == nil {
		return nil
	}
	view := make([]Order, 0, len(b.orders))
	for _, order := range b.orders {
		if filter.Matches(order) {
			view = append(view, order)
		}
	}
	return view
}

// Find looks an order up by id.
func (b *Board) Find(id int64) (Order, bool) {
	if b == nil {
		return Order{}, false
	}
	for _, order := range b.orders {
		if order.ID == id {
			return order, true
		}
	}
	return Order{}, false
}

// DeliveryPersons returns the staff fetched with the board.
func (b *Board) DeliveryPersons() []DeliveryPerson {
	if b == nil {
		return nil
	}
	return append([]DeliveryPerson(nil), b.deliveryPersons...)
}

// FetchedAt is when the board was loaded.
func (b *Board) FetchedAt() time.Time {
	if b == nil {
		return time.Time{}
	}
	return b.fetchedAt
}
