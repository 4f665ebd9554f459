package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a page-scoped copy of a backend order. Amounts are trusted as sent.
type Order struct {
	ID          int64
	TotalAmount decimal.Decimal
	Status      Status
	CreatedAt   time.Time
	Customer    Customer
	Address     Address
	Items       []Item
}

// Customer identifies who placed the order.
type Customer struct {
	Name  string
	Email string
	CPF   string
	Phone string
}

// Address is where the order is delivered.
type Address struct {
	Street       string
	Number       string
	Neighborhood string
	City         string
}

// Item is one order line; Subtotal is precomputed by the backend.
type Item struct {
	ProductID   int64
	ProductName string
	Quantity    int
	Price       decimal.Decimal
	Subtotal    decimal.Decimal
}

// DeliveryPerson is staff assignable to an accepted order.
type DeliveryPerson struct {
	ID   int64
	Name string
}

// Can reports whether the action is offered for the order's current status.
func (o Order) Can(action Action) bool {
	_, ok := Next(o.Status, action)
	return ok
}
