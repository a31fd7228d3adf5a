package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/everestcrafts/souvenirs-backend/pkg/enums"
)

// ProductListFilters describe the supported filter knobs for the browse endpoint.
type ProductListFilters struct {
	Query           string
	CategorySlug    string
	PriceMin        *decimal.Decimal
	PriceMax        *decimal.Decimal
	BestsellersOnly bool
	InStockOnly     bool
}

// ListProductsInput captures the inputs needed to page/filter/sort products.
type ListProductsInput struct {
	Filters ProductListFilters
	Sort    enums.ProductSort
	Limit   int
	Offset  int
}

// CategorySummary is one category row plus its product count.
type CategorySummary struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	ProductCount int64     `json:"product_count"`
}

// CategoryList wraps the category summaries plus the catalog-wide product count.
type CategoryList struct {
	Categories       []CategorySummary `json:"categories"`
	AllProductsCount int64             `json:"all_products_count"`
}
