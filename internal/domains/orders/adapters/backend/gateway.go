package backend

import (
	"context"
	"strings"
	"time"

	backendclient "github.com/Apurer/delivery-console/internal/clients/http/backend"
	"github.com/Apurer/delivery-console/internal/domains/orders/domain"
	"github.com/Apurer/delivery-console/internal/domains/orders/ports"
)

// timestampLayouts covers the createdAt shapes the backend emits: ISO local
// date-times with or without fractions, and zoned RFC 3339.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Gateway adapts the session-bound backend client to the orders port.
type Gateway struct {
	client *backendclient.SessionClient
}

func NewGateway(client *backendclient.SessionClient) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) ListOrders(ctx context.Context) ([]domain.Order, error) {
	dtos, err := g.client.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(dtos))
	for _, dto := range dtos {
		orders = append(orders, toDomainOrder(dto))
	}
	return orders, nil
}

func (g *Gateway) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	return g.client.UpdateOrderStatus(ctx, id, string(status))
}

func (g *Gateway) AssignDelivery(ctx context.Context, orderID, deliveryPersonID int64) error {
	return g.client.AssignDelivery(ctx, orderID, deliveryPersonID)
}

func (g *Gateway) ListDeliveryPersons(ctx context.Context) ([]domain.DeliveryPerson, error) {
	dtos, err := g.client.ListDeliveryPersons(ctx)
	if err != nil {
		return nil, err
	}
	persons := make([]domain.DeliveryPerson, 0, len(dtos))
	for _, dto := range dtos {
		persons = append(persons, domain.DeliveryPerson{ID: dto.ID, Name: dto.Name})
	}
	return persons, nil
}

func toDomainOrder(dto backendclient.Order) domain.Order {
	items := make([]domain.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, domain.Item{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal,
		})
	}
	return domain.Order{
		ID:          dto.ID,
		TotalAmount: dto.TotalAmount,
		Status:      domain.Status(strings.ToUpper(strings.TrimSpace(dto.Status))),
		CreatedAt:   ParseTimestamp(dto.CreatedAt),
		Customer: domain.Customer{
			Name:  dto.CustomerName,
			Email: dto.CustomerEmail,
			CPF:   dto.CustomerCPF,
			Phone: dto.CustomerPhone,
		},
		Address: domain.Address{
			Street:       dto.Street,
			Number:       dto.Number,
			Neighborhood: dto.Neighborhood,
			City:         dto.City,
		},
		Items: items,
	}
}

// ParseTimestamp reads a backend createdAt. Unparseable values yield the zero
// time, which sorts last.
func ParseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return ts
		}
	}
	return time.Time{}
}

var _ ports.Gateway = (*Gateway)(nil)
