package backend

import (
	"context"

	backendclient "github.com/Apurer/delivery-console/internal/clients/http/backend"
	"github.com/Apurer/delivery-console/internal/domains/auth/domain"
	"github.com/Apurer/delivery-console/internal/domains/auth/ports"
)

// Gateway adapts the backend REST client to the auth port.
type Gateway struct {
	client *backendclient.Client
}

func NewGateway(client *backendclient.Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) Login(ctx context.Context, email, password string) (string, error) {
	return g.client.Login(ctx, email, password)
}

func (g *Gateway) Register(ctx context.Context, registration domain.Registration) error {
	return g.client.Register(ctx, backendclient.RegisterRequest{
		Name:     registration.Name,
		Email:    registration.Email,
		Password: registration.Password,
		CPF:      registration.CPF,
		Address: backendclient.Address{
			Street:       registration.Address.Street,
			Number:       registration.Address.Number,
			Neighborhood: registration.Address.Neighborhood,
			City:         registration.Address.City,
		},
	})
}

var _ ports.Gateway = (*Gateway)(nil)
