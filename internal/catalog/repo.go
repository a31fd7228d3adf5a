package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/everestcrafts/souvenirs-backend/pkg/db/models"
	"github.com/everestcrafts/souvenirs-backend/pkg/enums"
	pkgerrors "github.com/everestcrafts/souvenirs-backend/pkg/errors"
)

// Repository wires together catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, err
	}
	return &product, nil
}

// FindDetail loads the product with its category for the detail endpoint.
func (r *Repository) FindDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, err
	}
	return &product, nil
}

// ListProducts applies the browse filters and ordering.
func (r *Repository) ListProducts(ctx context.Context, input ListProductsInput) ([]models.Product, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Category")

	filters := input.Filters
	if search := strings.TrimSpace(filters.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if slug := strings.TrimSpace(filters.CategorySlug); slug != "" && slug != "all" {
		q = q.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", slug)
	}
	if filters.PriceMin != nil {
		q = q.Where("price >= ?", filters.PriceMin)
	}
	if filters.PriceMax != nil {
		q = q.Where("price <= ?", filters.PriceMax)
	}
	if filters.BestsellersOnly {
		q = q.Where("bestseller = ?", true)
	}
	if filters.InStockOnly {
		q = q.Where("in_stock > 0")
	}

	switch input.Sort {
	case enums.ProductSortPriceLow:
		q = q.Order("price ASC")
	case enums.ProductSortPriceHigh:
		q = q.Order("price DESC")
	case enums.ProductSortRating:
		q = q.Order("rating DESC")
	case enums.ProductSortPopularity:
		q = q.Order("reviews DESC")
	default:
		q = q.Order("bestseller DESC").Order("rating DESC").Order("created_at DESC")
	}

	if input.Limit > 0 {
		q = q.Limit(input.Limit)
	}
	if input.Offset > 0 {
		q = q.Offset(input.Offset)
	}

	var rows []models.Product
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListCategories returns every category with its product count, plus the
// catalog-wide product total.
func (r *Repository) ListCategories(ctx context.Context) (*CategoryList, error) {
	var summaries []CategorySummary
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("categories.id, categories.name, categories.slug, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.category_id = categories.id").
		Group("categories.id, categories.name, categories.slug").
		Order("categories.name ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, err
	}

	return &CategoryList{Categories: summaries, AllProductsCount: total}, nil
}

// FindCategoryBySlug loads one category.
func (r *Repository) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, err
	}
	return &category, nil
}
