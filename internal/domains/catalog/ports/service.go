package ports

import (
	"context"

	"github.com/Apurer/delivery-console/internal/domains/catalog/domain"
)

// Service exposes catalog management to adapters.
type Service interface {
	Catalog(ctx context.Context) (domain.Catalog, error)
	CreateProduct(ctx context.Context, draft domain.Draft) error
	UpdateProduct(ctx context.Context, id int64, draft domain.Draft) error
	// DeleteProduct reports false when the operator declined the confirmation.
	DeleteProduct(ctx context.Context, id int64, confirm domain.Confirmation) (bool, error)
	// CreateCategory reports false when the name was blank and nothing was sent.
	CreateCategory(ctx context.Context, name string) (bool, error)
	DeleteCategory(ctx context.Context, id int64, confirm domain.Confirmation) (bool, error)
}
