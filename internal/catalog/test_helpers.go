package catalog

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/everestcrafts/souvenirs-backend/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:catalog_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustCreateCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()
	category := &models.Category{ID: uuid.New(), Name: name, Slug: slug}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

type productSpec struct {
	Name       string
	Price      int64
	Original   int64
	Rating     float64
	Reviews    int
	Bestseller bool
	InStock    int
}

func mustCreateProduct(t *testing.T, db *gorm.DB, categoryID uuid.UUID, spec productSpec) *models.Product {
	t.Helper()
	if spec.Name == "" {
		spec.Name = fmt.Sprintf("Souvenir %s", uuid.NewString())
	}
	product := &models.Product{
		ID:            uuid.New(),
		CategoryID:    categoryID,
		Name:          spec.Name,
		Description:   "Handmade souvenir",
		Price:         decimal.NewFromInt(spec.Price),
		OriginalPrice: decimal.NewFromInt(spec.Original),
		Rating:        spec.Rating,
		Reviews:       spec.Reviews,
		Bestseller:    spec.Bestseller,
		InStock:       spec.InStock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
