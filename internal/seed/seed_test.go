package seed

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/everestcrafts/souvenirs-backend/pkg/db/models"
	"github.com/everestcrafts/souvenirs-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "seed-test", Output: io.Discard})
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:seed_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRunPopulatesCatalog(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	if err := Run(context.Background(), db, testLogger()); err != nil {
		t.Fatalf("run: %v", err)
	}

	var categoryCount, productCount int64
	db.Model(&models.Category{}).Count(&categoryCount)
	db.Model(&models.Product{}).Count(&productCount)
	if categoryCount != 5 {
		t.Fatalf("expected 5 categories, got %d", categoryCount)
	}
	if productCount != 8 {
		t.Fatalf("expected 8 products, got %d", productCount)
	}

	var thangka models.Product
	if err := db.Preload("Category").First(&thangka, "name = ?", "Traditional Thangka Painting").Error; err != nil {
		t.Fatalf("load thangka: %v", err)
	}
	if !thangka.Price.Equal(decimal.NewFromInt(850)) || !thangka.Bestseller {
		t.Fatalf("unexpected thangka %+v", thangka)
	}
	if thangka.Category == nil || thangka.Category.Slug != "artwork" {
		t.Fatalf("expected artwork category, got %+v", thangka.Category)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	for i := 0; i < 2; i++ {
		if err := Run(context.Background(), db, testLogger()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	var categoryCount, productCount int64
	db.Model(&models.Category{}).Count(&categoryCount)
	db.Model(&models.Product{}).Count(&productCount)
	if categoryCount != 5 || productCount != 8 {
		t.Fatalf("expected 5/8 after rerun, got %d/%d", categoryCount, productCount)
	}
}

func TestRunRestoresEditedProduct(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	if err := Run(context.Background(), db, testLogger()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := db.Model(&models.Product{}).
		Where("name = ?", "Singing Bowl Set").
		Update("in_stock", 0).Error; err != nil {
		t.Fatalf("edit: %v", err)
	}

	if err := Run(context.Background(), db, testLogger()); err != nil {
		t.Fatalf("rerun: %v", err)
	}
	var bowl models.Product
	if err := db.First(&bowl, "name = ?", "Singing Bowl Set").Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if bowl.InStock != 18 {
		t.Fatalf("expected seed to restore stock 18, got %d", bowl.InStock)
	}
}
