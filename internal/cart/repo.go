package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/everestcrafts/souvenirs-backend/pkg/db"
	"github.com/everestcrafts/souvenirs-backend/pkg/db/models"
	pkgerrors "github.com/everestcrafts/souvenirs-backend/pkg/errors"
)

// Repository persists session-scoped cart lines.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a cart repository bound to the provided DB.
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

// FindBySession returns every cart line for the session with products preloaded.
func (r *Repository) FindBySession(ctx context.Context, sessionKey string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("session_key = ?", sessionKey).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FindLine returns the session's line for one product, or nil when absent.
func (r *Repository) FindLine(ctx context.Context, sessionKey string, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("session_key = ? AND product_id = ?", sessionKey, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// FindByID returns the line only when it belongs to the session.
func (r *Repository) FindByID(ctx context.Context, sessionKey string, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ? AND session_key = ?", itemID, sessionKey).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new cart line. A concurrent add for the same session and
// product lands on the unique session+product index; that surfaces as a
// retryable conflict instead of a raw driver error.
func (r *Repository) Create(ctx context.Context, item *models.CartItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if db.IsUniqueViolation(err, "idx_cart_session_product") {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "cart line already exists for this product, retry the add")
		}
		return err
	}
	return nil
}

// Save persists changes to an existing cart line.
func (r *Repository) Save(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteByID removes the session's line; reports whether a row was deleted.
func (r *Repository) DeleteByID(ctx context.Context, sessionKey string, itemID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND session_key = ?", itemID, sessionKey).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteBySession removes every line for the session.
func (r *Repository) DeleteBySession(ctx context.Context, sessionKey string) error {
	return r.db.WithContext(ctx).
		Where("session_key = ?", sessionKey).
		Delete(&models.CartItem{}).Error
}
