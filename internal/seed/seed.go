package seed

import (
	"context"
	stderrors "errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/everestcrafts/souvenirs-backend/pkg/db/models"
	pkgerrors "github.com/everestcrafts/souvenirs-backend/pkg/errors"
	"github.com/everestcrafts/souvenirs-backend/pkg/logger"
)

type categorySeed struct {
	Name string
	Slug string
}

type productSeed struct {
	Name          string
	Description   string
	Price         int64
	OriginalPrice int64
	CategorySlug  string
	ImageURL      string
	Rating        float64
	Reviews       int
	Bestseller    bool
	InStock       int
}

var categories = []categorySeed{
	{Name: "Artwork", Slug: "artwork"},
	{Name: "Handicrafts", Slug: "handicrafts"},
	{Name: "Textiles", Slug: "textiles"},
	{Name: "Pottery", Slug: "pottery"},
	{Name: "Jewelry", Slug: "jewelry"},
}

var products = []productSeed{
	{
		Name:          "Traditional Thangka Painting",
		Description:   "Hand-painted traditional Buddhist Thangka with intricate details",
		Price:         850,
		OriginalPrice: 1200,
		CategorySlug:  "artwork",
		ImageURL:      "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400&h=400&fit=crop",
		Rating:        4.8,
		Reviews:       23,
		Bestseller:    true,
		InStock:       15,
	},
	{
		Name:          "Wooden Pagoda Model",
		Description:   "Miniature replica of Bhaktapur's famous Nyatapola Temple",
		Price:         450,
		OriginalPrice: 600,
		CategorySlug:  "handicrafts",
		ImageURL:      "https://images.unsplash.com/photo-1545558014-8692077e9b5c?w=400&h=400&fit=crop",
		Rating:        4.6,
		Reviews:       18,
		Bestseller:    true,
		InStock:       8,
	},
	{
		Name:          "Nepali Pashmina Shawl",
		Description:   "Premium cashmere pashmina with traditional patterns",
		Price:         320,
		OriginalPrice: 450,
		CategorySlug:  "textiles",
		ImageURL:      "https://images.unsplash.com/photo-1584464491033-06628f3a6b7b?w=400&h=400&fit=crop",
		Rating:        4.9,
		Reviews:       34,
		InStock:       25,
	},
	{
		Name:          "Ceramic Pottery Set",
		Description:   "Hand-crafted ceramic bowls with traditional Newari designs",
		Price:         280,
		OriginalPrice: 380,
		CategorySlug:  "pottery",
		ImageURL:      "https://images.unsplash.com/photo-1578749556568-bc2c40e68b61?w=400&h=400&fit=crop",
		Rating:        4.7,
		Reviews:       12,
		InStock:       20,
	},
	{
		Name:          "Silver Temple Jewelry",
		Description:   "Traditional Nepali silver jewelry with precious stones",
		Price:         650,
		OriginalPrice: 850,
		CategorySlug:  "jewelry",
		ImageURL:      "https://images.unsplash.com/photo-1515562141207-7a88fb7ce338?w=400&h=400&fit=crop",
		Rating:        4.8,
		Reviews:       29,
		Bestseller:    true,
		InStock:       12,
	},
	{
		Name:          "Khukuri Knife Set",
		Description:   "Authentic Gurkha Khukuri with decorative sheath",
		Price:         480,
		OriginalPrice: 650,
		CategorySlug:  "handicrafts",
		ImageURL:      "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400&h=400&fit=crop",
		Rating:        4.5,
		Reviews:       16,
		InStock:       10,
	},
	{
		Name:          "Singing Bowl Set",
		Description:   "Hand-forged Tibetan singing bowl with wooden striker",
		Price:         380,
		OriginalPrice: 520,
		CategorySlug:  "handicrafts",
		ImageURL:      "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=400&h=400&fit=crop",
		Rating:        4.9,
		Reviews:       41,
		Bestseller:    true,
		InStock:       18,
	},
	{
		Name:          "Wood Carved Mask",
		Description:   "Traditional Bhairav mask used in cultural festivals",
		Price:         220,
		OriginalPrice: 300,
		CategorySlug:  "artwork",
		ImageURL:      "https://images.unsplash.com/photo-1578749556568-bc2c40e68b61?w=400&h=400&fit=crop",
		Rating:        4.4,
		Reviews:       8,
		InStock:       22,
	},
}

// Run loads the sample souvenir catalog. Categories are matched by slug and
// products by name, so repeated runs update rather than duplicate.
func Run(ctx context.Context, db *gorm.DB, logg *logger.Logger) error {

	bySlug := make(map[string]*models.Category, len(categories))
	for _, c := range categories {
		category := &models.Category{Name: c.Name, Slug: c.Slug}
		err := db.WithContext(ctx).
			Where(models.Category{Slug: c.Slug}).
			Assign(models.Category{Name: c.Name}).
			FirstOrCreate(category).Error
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seed category "+c.Slug)
		}
		bySlug[c.Slug] = category
	}

	for _, p := range products {
		category, ok := bySlug[p.CategorySlug]
		if !ok {
			return pkgerrors.New(pkgerrors.CodeInternal, "unknown category slug "+p.CategorySlug)
		}

		var product models.Product
		err := db.WithContext(ctx).Where("name = ?", p.Name).First(&product).Error
		if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seed product lookup "+p.Name)
		}

		product.CategoryID = category.ID
		product.Name = p.Name
		product.Description = p.Description
		product.Price = decimal.NewFromInt(p.Price)
		product.OriginalPrice = decimal.NewFromInt(p.OriginalPrice)
		product.ImageURL = p.ImageURL
		product.Rating = p.Rating
		product.Reviews = p.Reviews
		product.Bestseller = p.Bestseller
		product.InStock = p.InStock

		if err := db.WithContext(ctx).Save(&product).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seed product "+p.Name)
		}
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"categories": len(categories),
		"products":   len(products),
	}), "seed.complete")
	return nil
}
