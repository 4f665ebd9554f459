package mapper

import (
	"strings"
	"time"

	"github.com/Apurer/delivery-console/internal/domains/orders/domain"
	"github.com/Apurer/delivery-console/internal/shared/money"
)

// DateLayout renders order timestamps for operators.
const DateLayout = "02/01/2006 15:04:05"

// OrderCard is the template representation of one order.
type OrderCard struct {
	ID            int64
	CreatedAt     string
	Status        string
	BadgeClass    string
	CustomerName  string
	CustomerEmail string
	CustomerCPF   string
	CustomerPhone string
	Address       string
	Items         []ItemLine
	Total         string
	CanAccept     bool
	CanCancel     bool
	CanAssign     bool
	CanDeliver    bool
}

// ItemLine is one order line as displayed.
type ItemLine struct {
	ProductID int64
	Name      string
	Quantity  int
	Subtotal  string
}

// FilterOption is one entry of the status filter.
type FilterOption struct {
	Value    string
	Label    string
	Selected bool
}

// DeliveryOption is one entry of the delivery-person selector.
type DeliveryOption struct {
	ID   int64
	Name string
}

var filterLabels = []struct {
	filter domain.Filter
	label  string
}{
	{domain.FilterAll, "Todos"},
	{domain.Filter(domain.StatusCreated), "Criados"},
	{domain.Filter(domain.StatusAccepted), "Aceitos"},
	{domain.Filter(domain.StatusOutForDelivery), "Em entrega"},
	{domain.Filter(domain.StatusDelivered), "Entregues"},
	{domain.Filter(domain.StatusCancelled), "Cancelados"},
}

// FilterOptions lists the status filter with the current choice selected.
func FilterOptions(current domain.Filter) []FilterOption {
	options := make([]FilterOption, 0, len(filterLabels))
	for _, entry := range filterLabels {
		options = append(options, FilterOption{
			Value:    string(entry.filter),
			Label:    entry.label,
			Selected: entry.filter == current,
		})
	}
	return options
}

// BadgeClass picks the status badge style; unknown statuses get a neutral badge.
func BadgeClass(status domain.Status) string {
	switch status {
	case domain.StatusCreated:
		return "badge badge-created"
	case domain.StatusAccepted:
		return "badge badge-accepted"
	case domain.StatusOutForDelivery:
		return "badge badge-out"
	case domain.StatusDelivered:
		return "badge badge-delivered"
	case domain.StatusCancelled:
		return "badge badge-cancelled"
	default:
		return "badge"
	}
}

// ToOrderCards maps board orders for rendering, preserving order.
func ToOrderCards(orders []domain.Order) []OrderCard {
	cards := make([]OrderCard, 0, len(orders))
	for _, order := range orders {
		cards = append(cards, ToOrderCard(order))
	}
	return cards
}

func ToOrderCard(order domain.Order) OrderCard {
	items := make([]ItemLine, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ItemLine{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			Subtotal:  money.Format(item.Subtotal),
		})
	}
	card := OrderCard{
		ID:            order.ID,
		Status:        string(order.Status),
		BadgeClass:    BadgeClass(order.Status),
		CustomerName:  order.Customer.Name,
		CustomerEmail: order.Customer.Email,
		CustomerCPF:   order.Customer.CPF,
		CustomerPhone: order.Customer.Phone,
		Address:       formatAddress(order.Address),
		Items:         items,
		Total:         money.Format(order.TotalAmount),
		CanAccept:     order.Can(domain.ActionAccept),
		CanCancel:     order.Can(domain.ActionCancel),
		CanAssign:     order.Can(domain.ActionAssign),
		CanDeliver:    order.Can(domain.ActionDeliver),
	}
	card.CreatedAt = FormatTime(order.CreatedAt)
	return card
}

// FormatTime renders t with DateLayout, or nothing for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ToDeliveryOptions maps delivery staff for the assignment selector.
func ToDeliveryOptions(persons []domain.DeliveryPerson) []DeliveryOption {
	options := make([]DeliveryOption, 0, len(persons))
	for _, person := range persons {
		options = append(options, DeliveryOption{ID: person.ID, Name: person.Name})
	}
	return options
}

func formatAddress(addr domain.Address) string {
	var b strings.Builder
	b.WriteString(addr.Street)
	if addr.Number != "" {
		b.WriteString(", ")
		b.WriteString(addr.Number)
	}
	for _, part := range []string{addr.Neighborhood, addr.City} {
		if part != "" {
			b.WriteString(" - ")
			b.WriteString(part)
		}
	}
	return strings.TrimPrefix(b.String(), " - ")
}
