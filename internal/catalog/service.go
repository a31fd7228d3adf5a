package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/everestcrafts/souvenirs-backend/pkg/db/models"
	pkgerrors "github.com/everestcrafts/souvenirs-backend/pkg/errors"
)

const (
	defaultPageSize = 24
	maxPageSize     = 100
)

// Service exposes the read-only catalog surface.
type Service interface {
	ListCategories(ctx context.Context) (*CategoryList, error)
	ListProducts(ctx context.Context, input ListProductsInput) ([]models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo *Repository
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListCategories(ctx context.Context) (*CategoryList, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) ([]models.Product, error) {
	if input.Filters.PriceMin != nil && input.Filters.PriceMin.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_min must be non-negative")
	}
	if input.Filters.PriceMax != nil && input.Filters.PriceMax.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_max must be non-negative")
	}
	if input.Limit <= 0 {
		input.Limit = defaultPageSize
	}
	if input.Limit > maxPageSize {
		input.Limit = maxPageSize
	}
	if input.Offset < 0 {
		input.Offset = 0
	}
	return s.repo.ListProducts(ctx, input)
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	return s.repo.FindDetail(ctx, id)
}
