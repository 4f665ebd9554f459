package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/delivery-console/internal/domains/catalog/domain"
	"github.com/Apurer/delivery-console/internal/domains/catalog/ports"
)

// Service manages products and categories on behalf of one session.
type Service struct {
	gateway ports.Gateway
}

func NewService(gateway ports.Gateway) *Service {
	return &Service{gateway: gateway}
}

// Catalog fetches products and categories. Whatever fails is left empty and
// reported; the rest is still returned.
func (s *Service) Catalog(ctx context.Context) (domain.Catalog, error) {
	var (
		catalog domain.Catalog
		errs    []error
		err     error
	)
	if catalog.Products, err = s.gateway.ListProducts(ctx); err != nil {
		catalog.Products = nil
		errs = append(errs, fmt.Errorf("%w: products: %w", ErrListUnavailable, err))
	}
	if catalog.Categories, err = s.gateway.ListCategories(ctx); err != nil {
		catalog.Categories = nil
		errs = append(errs, fmt.Errorf("%w: categories: %w", ErrListUnavailable, err))
	}
	return catalog, errors.Join(errs...)
}

func (s *Service) CreateProduct(ctx context.Context, draft domain.Draft) error {
	return wrap(ErrCreateFailed, s.gateway.CreateProduct(ctx, draft))
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, draft domain.Draft) error {
	if id <= 0 {
		return fmt.Errorf("%w: product id %d", ErrInvalidInput, id)
	}
	return wrap(ErrUpdateFailed, s.gateway.UpdateProduct(ctx, id, draft))
}

func (s *Service) DeleteProduct(ctx context.Context, id int64, confirm domain.Confirmation) (bool, error) {
	return s.remove(ctx, id, domain.PromptDeleteProduct, confirm, s.gateway.DeleteProduct)
}

// CreateCategory ignores blank names.
func (s *Service) CreateCategory(ctx context.Context, name string) (bool, error) {
	name, ok := domain.CategoryName(name)
	if !ok {
		return false, nil
	}
	if err := s.gateway.CreateCategory(ctx, name); err != nil {
		return false, wrap(ErrCreateFailed, err)
	}
	return true, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64, confirm domain.Confirmation) (bool, error) {
	return s.remove(ctx, id, domain.PromptDeleteCategory, confirm, s.gateway.DeleteCategory)
}

func (s *Service) remove(ctx context.Context, id int64, prompt string, confirm domain.Confirmation, del func(context.Context, int64) error) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("%w: id %d", ErrInvalidInput, id)
	}
	if confirm == nil || !confirm(prompt) {
		return false, nil
	}
	if err := del(ctx, id); err != nil {
		return false, wrap(ErrDeleteFailed, err)
	}
	return true, nil
}

var _ ports.Service = (*Service)(nil)
