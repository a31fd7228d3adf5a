package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a souvenir listing. InStock is the live quantity the
// inventory ledger decrements; it never drops below zero.
type Product struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CategoryID    uuid.UUID       `gorm:"column:category_id;type:uuid;not null;index"`
	Category      *Category       `gorm:"foreignKey:CategoryID"`
	Name          string          `gorm:"column:name;not null"`
	Description   string          `gorm:"column:description;not null"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	OriginalPrice decimal.Decimal `gorm:"column:original_price;type:numeric(10,2);not null"`
	ImageURL      string          `gorm:"column:image_url"`
	Rating        float64         `gorm:"column:rating;not null;default:0"`
	Reviews       int             `gorm:"column:reviews;not null;default:0"`
	Bestseller    bool            `gorm:"column:bestseller;not null;default:false"`
	InStock       int             `gorm:"column:in_stock;not null;default:0"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// DiscountPercentage derives the rounded percent saved versus the list price.
// Zero when the product is not discounted.
func (p *Product) DiscountPercentage() int {
	if !p.OriginalPrice.GreaterThan(p.Price) || p.OriginalPrice.IsZero() {
		return 0
	}
	pct := p.OriginalPrice.Sub(p.Price).
		Div(p.OriginalPrice).
		Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}
