package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/everestcrafts/souvenirs-backend/pkg/db/models"
	pkgerrors "github.com/everestcrafts/souvenirs-backend/pkg/errors"
)

// Ledger owns per-product available quantity. All mutations go through the
// conditional decrement so stock can never be driven negative, even under
// concurrent order placement.
type Ledger struct {
	db *gorm.DB
}

// NewLedger builds a ledger bound to the provided GORM DB.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// WithTx returns a ledger bound to the provided transaction.
func (l *Ledger) WithTx(tx *gorm.DB) *Ledger {
	if tx == nil {
		return l
	}
	return &Ledger{db: tx}
}

// CheckAvailable reports whether the requested quantity is coverable by the
// product's live stock. Advisory only: Decrement re-validates inside its own
// statement.
func (l *Ledger) CheckAvailable(ctx context.Context, productID uuid.UUID, quantity int) (bool, error) {
	if quantity < 1 {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	var product models.Product
	err := l.db.WithContext(ctx).
		Select("id", "in_stock").
		First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return false, err
	}
	return quantity <= product.InStock, nil
}

// Decrement reduces the product's stock by quantity. The decrement is a single
// conditional UPDATE guarded by `in_stock >= quantity`; zero rows affected
// after real contention surfaces as an insufficient-stock error rather than a
// negative balance.
func (l *Ledger) Decrement(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	res := l.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND in_stock >= ?", productID, quantity).
		Update("in_stock", gorm.Expr("in_stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var product models.Product
	err := l.db.WithContext(ctx).
		Select("id", "in_stock").
		First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return err
	}
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
		WithDetails(map[string]any{
			"product_id": productID,
			"requested":  quantity,
			"available":  product.InStock,
		})
}
