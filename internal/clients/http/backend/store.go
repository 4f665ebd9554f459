package backend

import (
	"context"
	"net/http"
)

// StoreStatus returns the raw open flag from GET /store/status.
func (s *SessionClient) StoreStatus(ctx context.Context) (bool, error) {
	var open bool
	if err := s.do(ctx, request{method: http.MethodGet, path: "/store/status"}, &open); err != nil {
		return false, err
	}
	return open, nil
}

// OpenStore sends the open command using the configured verb.
func (s *SessionClient) OpenStore(ctx context.Context) error {
	return s.do(ctx, request{method: s.client.toggleMethod, path: "/store/open"}, nil)
}

// CloseStore sends the close command using the configured verb.
func (s *SessionClient) CloseStore(ctx context.Context) error {
	return s.do(ctx, request{method: s.client.toggleMethod, path: "/store/close"}, nil)
}
