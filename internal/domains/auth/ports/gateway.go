package ports

import (
	"context"

	"github.com/Apurer/delivery-console/internal/domains/auth/domain"
)

// Gateway reaches the backend authentication endpoints.
type Gateway interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, registration domain.Registration) error
}
