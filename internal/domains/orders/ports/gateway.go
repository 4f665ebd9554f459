package ports

import (
	"context"

	"github.com/Apurer/delivery-console/internal/domains/orders/domain"
)

// Gateway reaches the backend order and delivery-staff endpoints.
type Gateway interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	AssignDelivery(ctx context.Context, orderID, deliveryPersonID int64) error
	ListDeliveryPersons(ctx context.Context) ([]domain.DeliveryPerson, error)
}
