package ports

import (
	"context"

	"github.com/Apurer/delivery-console/internal/domains/auth/domain"
)

// Service exposes authentication and session use cases to adapters.
type Service interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, registration domain.Registration) error
	Session(ctx context.Context, id string) (*domain.Session, error)
	Logout(ctx context.Context, id string) error
	Flash(ctx context.Context, id, message string) error
	TakeFlashes(ctx context.Context, id string) ([]string, error)
}
