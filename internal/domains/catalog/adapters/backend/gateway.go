package backend

import (
	"context"

	backendclient "github.com/Apurer/delivery-console/internal/clients/http/backend"
	"github.com/Apurer/delivery-console/internal/domains/catalog/domain"
	"github.com/Apurer/delivery-console/internal/domains/catalog/ports"
)

// Gateway adapts the session-bound backend client to the catalog port.
type Gateway struct {
	client *backendclient.SessionClient
}

func NewGateway(client *backendclient.SessionClient) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	dtos, err := g.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, domain.Product{
			ID:           dto.ID,
			Name:         dto.Name,
			Description:  dto.Description,
			Price:        dto.Price,
			ImageURL:     dto.ImageURL,
			CategoryID:   dto.CategoryID,
			CategoryName: dto.CategoryName,
			Stock:        dto.Stock,
		})
	}
	return products, nil
}

func (g *Gateway) CreateProduct(ctx context.Context, draft domain.Draft) error {
	return g.client.CreateProduct(ctx, toProductForm(draft))
}

func (g *Gateway) UpdateProduct(ctx context.Context, id int64, draft domain.Draft) error {
	return g.client.UpdateProduct(ctx, id, toProductForm(draft))
}

func (g *Gateway) DeleteProduct(ctx context.Context, id int64) error {
	return g.client.DeleteProduct(ctx, id)
}

func (g *Gateway) ListCategories(ctx context.Context) ([]domain.Category, error) {
	dtos, err := g.client.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(dtos))
	for _, dto := range dtos {
		categories = append(categories, domain.Category{ID: dto.ID, Name: dto.Name})
	}
	return categories, nil
}

func (g *Gateway) CreateCategory(ctx context.Context, name string) error {
	return g.client.CreateCategory(ctx, name)
}

func (g *Gateway) DeleteCategory(ctx context.Context, id int64) error {
	return g.client.DeleteCategory(ctx, id)
}

func toProductForm(draft domain.Draft) backendclient.ProductForm {
	form := backendclient.ProductForm{
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		CategoryID:  draft.CategoryID,
		Stock:       draft.Stock,
	}
	if draft.Image != nil && len(draft.Image.Data) > 0 {
		form.Image = &backendclient.Upload{
			Filename:    draft.Image.Filename,
			ContentType: draft.Image.ContentType,
			Data:        draft.Image.Data,
		}
	}
	return form
}

var _ ports.Gateway = (*Gateway)(nil)
