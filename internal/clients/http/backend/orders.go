package backend

import (
	"context"
	"net/http"
)

// ListOrders fetches every order visible to the session.
func (s *SessionClient) ListOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := s.do(ctx, request{method: http.MethodGet, path: "/orders"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateOrderStatus moves an order to the given status.
func (s *SessionClient) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	path, err := resourcePath("/orders", "id", id, "/status")
	if err != nil {
		return err
	}
	req, err := jsonRequest(http.MethodPut, path, StatusUpdate{Status: status})
	if err != nil {
		return err
	}
	return s.do(ctx, req, nil)
}

// AssignDelivery hands an accepted order to a delivery person.
func (s *SessionClient) AssignDelivery(ctx context.Context, orderID, deliveryPersonID int64) error {
	orderSegment, err := pathParam("orderId", orderID)
	if err != nil {
		return err
	}
	deliverySegment, err := pathParam("deliveryId", deliveryPersonID)
	if err != nil {
		return err
	}
	path := "/orders/assign-delivery/" + orderSegment + "/" + deliverySegment
	return s.do(ctx, request{method: http.MethodPut, path: path}, nil)
}

// ListDeliveryPersons fetches the staff that can be assigned to orders.
func (s *SessionClient) ListDeliveryPersons(ctx context.Context) ([]DeliveryPerson, error) {
	var out []DeliveryPerson
	if err := s.do(ctx, request{method: http.MethodGet, path: "/users/delivery-persons"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
