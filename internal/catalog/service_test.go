package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/everestcrafts/souvenirs-backend/pkg/enums"
	pkgerrors "github.com/everestcrafts/souvenirs-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	db := newTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func TestListCategoriesWithCounts(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(t)
	ctx := context.Background()

	artwork := mustCreateCategory(t, repo.db, "Artwork", "artwork")
	pottery := mustCreateCategory(t, repo.db, "Pottery", "pottery")
	mustCreateProduct(t, repo.db, artwork.ID, productSpec{Price: 850, Original: 999, InStock: 5})
	mustCreateProduct(t, repo.db, artwork.ID, productSpec{Price: 220, Original: 300, InStock: 3})
	mustCreateProduct(t, repo.db, pottery.ID, productSpec{Price: 280, Original: 380, InStock: 2})

	list, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if list.AllProductsCount != 3 {
		t.Fatalf("expected 3 products overall, got %d", list.AllProductsCount)
	}
	counts := map[string]int64{}
	for _, c := range list.Categories {
		counts[c.Slug] = c.ProductCount
	}
	if counts["artwork"] != 2 || counts["pottery"] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestListProductsFilters(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(t)
	ctx := context.Background()

	artwork := mustCreateCategory(t, repo.db, "Artwork", "artwork")
	textiles := mustCreateCategory(t, repo.db, "Textiles", "textiles")
	mustCreateProduct(t, repo.db, artwork.ID, productSpec{Name: "Thangka Painting", Price: 850, Original: 999, Bestseller: true, InStock: 5})
	mustCreateProduct(t, repo.db, artwork.ID, productSpec{Name: "Carved Mask", Price: 220, Original: 300, InStock: 0})
	mustCreateProduct(t, repo.db, textiles.ID, productSpec{Name: "Pashmina Shawl", Price: 320, Original: 450, InStock: 10})

	rows, err := svc.ListProducts(ctx, ListProductsInput{Filters: ProductListFilters{Query: "pashmina"}})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Pashmina Shawl" {
		t.Fatalf("unexpected search result %+v", rows)
	}

	rows, err = svc.ListProducts(ctx, ListProductsInput{Filters: ProductListFilters{CategorySlug: "artwork"}})
	if err != nil {
		t.Fatalf("category filter: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 artwork products, got %d", len(rows))
	}

	rows, err = svc.ListProducts(ctx, ListProductsInput{Filters: ProductListFilters{BestsellersOnly: true}})
	if err != nil {
		t.Fatalf("bestsellers filter: %v", err)
	}
	if len(rows) != 1 || !rows[0].Bestseller {
		t.Fatalf("unexpected bestseller rows %+v", rows)
	}

	rows, err = svc.ListProducts(ctx, ListProductsInput{Filters: ProductListFilters{InStockOnly: true}})
	if err != nil {
		t.Fatalf("in stock filter: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 in-stock products, got %d", len(rows))
	}

	min := decimal.NewFromInt(300)
	max := decimal.NewFromInt(500)
	rows, err = svc.ListProducts(ctx, ListProductsInput{Filters: ProductListFilters{PriceMin: &min, PriceMax: &max}})
	if err != nil {
		t.Fatalf("price range filter: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Pashmina Shawl" {
		t.Fatalf("unexpected price range rows %+v", rows)
	}
}

func TestListProductsSorting(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(t)
	ctx := context.Background()

	cat := mustCreateCategory(t, repo.db, "Handicrafts", "handicrafts")
	mustCreateProduct(t, repo.db, cat.ID, productSpec{Name: "Pagoda", Price: 450, Original: 600, Rating: 4.6, Reviews: 18, InStock: 8})
	mustCreateProduct(t, repo.db, cat.ID, productSpec{Name: "Khukuri", Price: 480, Original: 650, Rating: 4.5, Reviews: 16, InStock: 10})
	mustCreateProduct(t, repo.db, cat.ID, productSpec{Name: "Bowl", Price: 380, Original: 520, Rating: 4.9, Reviews: 41, Bestseller: true, InStock: 18})

	rows, err := svc.ListProducts(ctx, ListProductsInput{Sort: enums.ProductSortPriceLow})
	if err != nil {
		t.Fatalf("price-low sort: %v", err)
	}
	if rows[0].Name != "Bowl" || rows[2].Name != "Khukuri" {
		t.Fatalf("unexpected price-low order: %s, %s, %s", rows[0].Name, rows[1].Name, rows[2].Name)
	}

	rows, err = svc.ListProducts(ctx, ListProductsInput{Sort: enums.ProductSortRating})
	if err != nil {
		t.Fatalf("rating sort: %v", err)
	}
	if rows[0].Name != "Bowl" {
		t.Fatalf("expected highest rated first, got %s", rows[0].Name)
	}

	rows, err = svc.ListProducts(ctx, ListProductsInput{Sort: enums.ProductSortPopularity})
	if err != nil {
		t.Fatalf("popularity sort: %v", err)
	}
	if rows[0].Reviews < rows[1].Reviews {
		t.Fatalf("expected most reviewed first")
	}

	rows, err = svc.ListProducts(ctx, ListProductsInput{Sort: enums.ProductSortFeatured})
	if err != nil {
		t.Fatalf("featured sort: %v", err)
	}
	if rows[0].Name != "Bowl" {
		t.Fatalf("expected bestseller first under featured sort, got %s", rows[0].Name)
	}
}

func TestGetProduct(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(t)
	ctx := context.Background()

	cat := mustCreateCategory(t, repo.db, "Jewelry", "jewelry")
	created := mustCreateProduct(t, repo.db, cat.ID, productSpec{Name: "Temple Jewelry", Price: 650, Original: 850, InStock: 12})

	product, err := svc.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if product.Category == nil || product.Category.Slug != "jewelry" {
		t.Fatalf("expected category preloaded, got %+v", product.Category)
	}
	if product.DiscountPercentage() != 24 {
		t.Fatalf("expected discount 24%%, got %d", product.DiscountPercentage())
	}
}

func TestGetProductNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.GetProduct(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
