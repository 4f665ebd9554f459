package backend

import (
	"context"

	backendclient "github.com/Apurer/delivery-console/internal/clients/http/backend"
	"github.com/Apurer/delivery-console/internal/domains/store/ports"
)

// Gateway adapts the session-bound backend client to the store port.
type Gateway struct {
	client *backendclient.SessionClient
}

func NewGateway(client *backendclient.SessionClient) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) Status(ctx context.Context) (bool, error) {
	return g.client.StoreStatus(ctx)
}

func (g *Gateway) Open(ctx context.Context) error {
	return g.client.OpenStore(ctx)
}

func (g *Gateway) Close(ctx context.Context) error {
	return g.client.CloseStore(ctx)
}

var _ ports.Gateway = (*Gateway)(nil)
