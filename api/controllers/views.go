package controllers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/everestcrafts/souvenirs-backend/internal/cart"
	"github.com/everestcrafts/souvenirs-backend/pkg/db/models"
)

type categoryView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type productView struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	OriginalPrice      decimal.Decimal `json:"original_price"`
	DiscountPercentage int             `json:"discount_percentage"`
	ImageURL           string          `json:"image_url"`
	Rating             float64         `json:"rating"`
	Reviews            int             `json:"reviews"`
	Bestseller         bool            `json:"bestseller"`
	InStock            int             `json:"in_stock"`
	Category           *categoryView   `json:"category,omitempty"`
	CategoryID         uuid.UUID       `json:"category_id"`
}

type cartLineView struct {
	ID           uuid.UUID       `json:"id"`
	Product      productView     `json:"product"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	TotalSavings decimal.Decimal `json:"total_savings"`
}

type cartView struct {
	Items        []cartLineView  `json:"items"`
	TotalItems   int             `json:"total_items"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	TotalSavings decimal.Decimal `json:"total_savings"`
}

type orderItemView struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Product    *productView    `json:"product,omitempty"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type orderView struct {
	ID          uuid.UUID       `json:"id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	Items       []orderItemView `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toCategoryView(c *models.Category) *categoryView {
	if c == nil {
		return nil
	}
	return &categoryView{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

func toProductView(p *models.Product) productView {
	return productView{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Price:              p.Price,
		OriginalPrice:      p.OriginalPrice,
		DiscountPercentage: p.DiscountPercentage(),
		ImageURL:           p.ImageURL,
		Rating:             p.Rating,
		Reviews:            p.Reviews,
		Bestseller:         p.Bestseller,
		InStock:            p.InStock,
		Category:           toCategoryView(p.Category),
		CategoryID:         p.CategoryID,
	}
}

func toProductViews(items []models.Product) []productView {
	views := make([]productView, 0, len(items))
	for i := range items {
		views = append(views, toProductView(&items[i]))
	}
	return views
}

func toCartLineView(line cart.Line) cartLineView {
	view := cartLineView{
		ID:           line.Item.ID,
		Quantity:     line.Item.Quantity,
		TotalPrice:   line.TotalPrice,
		TotalSavings: line.TotalSavings,
	}
	if line.Item.Product != nil {
		view.Product = toProductView(line.Item.Product)
	}
	return view
}

func toCartView(summary *cart.Summary) cartView {
	view := cartView{
		Items:        make([]cartLineView, 0, len(summary.Lines)),
		TotalItems:   summary.TotalItems,
		TotalPrice:   summary.TotalPrice,
		TotalSavings: summary.TotalSavings,
	}
	for _, line := range summary.Lines {
		view.Items = append(view.Items, toCartLineView(line))
	}
	return view
}

func toOrderItemView(item models.OrderItem) orderItemView {
	view := orderItemView{
		ID:         item.ID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		Price:      item.Price,
		TotalPrice: item.TotalPrice(),
	}
	if item.Product != nil {
		pv := toProductView(item.Product)
		view.Product = &pv
	}
	return view
}

func toOrderView(order *models.Order) orderView {
	view := orderView{
		ID:          order.ID,
		TotalAmount: order.TotalAmount,
		Status:      order.Status.String(),
		Items:       make([]orderItemView, 0, len(order.Items)),
		CreatedAt:   order.CreatedAt,
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, toOrderItemView(item))
	}
	return view
}

func toOrderViews(orders []models.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for i := range orders {
		views = append(views, toOrderView(&orders[i]))
	}
	return views
}
