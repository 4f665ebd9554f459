package ports

import (
	"context"

	"github.com/Apurer/delivery-console/internal/domains/catalog/domain"
)

// Gateway reaches the backend product and category endpoints.
type Gateway interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, draft domain.Draft) error
	UpdateProduct(ctx context.Context, id int64, draft domain.Draft) error
	DeleteProduct(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, id int64) error
}
