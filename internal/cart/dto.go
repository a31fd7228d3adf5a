package cart

import (
	"github.com/shopspring/decimal"

	"github.com/everestcrafts/souvenirs-backend/pkg/db/models"
)

// Line is a cart line enriched with its derived money fields.
type Line struct {
	Item         models.CartItem
	TotalPrice   decimal.Decimal
	TotalSavings decimal.Decimal
}

// Summary aggregates the session's cart for display.
type Summary struct {
	Lines        []Line
	TotalItems   int
	TotalPrice   decimal.Decimal
	TotalSavings decimal.Decimal
}

func newLine(item models.CartItem) Line {
	qty := decimal.NewFromInt(int64(item.Quantity))
	line := Line{Item: item}
	if item.Product == nil {
		return line
	}
	line.TotalPrice = item.Product.Price.Mul(qty)
	savings := item.Product.OriginalPrice.Sub(item.Product.Price)
	if savings.IsPositive() {
		line.TotalSavings = savings.Mul(qty)
	} else {
		line.TotalSavings = decimal.Zero
	}
	return line
}

func newSummary(items []models.CartItem) *Summary {
	summary := &Summary{
		Lines:        make([]Line, 0, len(items)),
		TotalPrice:   decimal.Zero,
		TotalSavings: decimal.Zero,
	}
	for _, item := range items {
		line := newLine(item)
		summary.Lines = append(summary.Lines, line)
		summary.TotalItems += item.Quantity
		summary.TotalPrice = summary.TotalPrice.Add(line.TotalPrice)
		summary.TotalSavings = summary.TotalSavings.Add(line.TotalSavings)
	}
	return summary
}
