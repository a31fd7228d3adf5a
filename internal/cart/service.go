package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/everestcrafts/souvenirs-backend/internal/catalog"
	"github.com/everestcrafts/souvenirs-backend/pkg/db/models"
	pkgerrors "github.com/everestcrafts/souvenirs-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the session-scoped cart operations. Every mutation is
// validated against the product's live stock at write time.
type Service interface {
	Add(ctx context.Context, sessionKey string, productID uuid.UUID, quantity int) (*models.CartItem, error)
	Update(ctx context.Context, sessionKey string, itemID uuid.UUID, quantity int) (*models.CartItem, error)
	Remove(ctx context.Context, sessionKey string, itemID uuid.UUID) error
	Clear(ctx context.Context, sessionKey string) error
	List(ctx context.Context, sessionKey string) (*Summary, error)
}

type service struct {
	repo     *Repository
	tx       txRunner
	products *catalog.Repository
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo *Repository, tx txRunner, products *catalog.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, tx: tx, products: products}, nil
}

// Add merges quantity into the session's line for the product, creating the
// line when absent. The combined quantity is checked against live stock; on
// rejection the prior line is left untouched.
func (s *service) Add(ctx context.Context, sessionKey string, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	if err := validateSessionKey(sessionKey); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	var result *models.CartItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		products := s.products.WithTx(tx)

		product, err := products.FindByID(ctx, productID)
		if err != nil {
			return err
		}

		line, err := repo.FindLine(ctx, sessionKey, productID)
		if err != nil {
			return err
		}

		combined := quantity
		if line != nil {
			combined += line.Quantity
		}
		if combined > product.InStock {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
				WithDetails(map[string]any{
					"product_id": product.ID,
					"requested":  combined,
					"available":  product.InStock,
				})
		}

		if line == nil {
			line = &models.CartItem{
				SessionKey: sessionKey,
				ProductID:  product.ID,
				Quantity:   quantity,
			}
			if err := repo.Create(ctx, line); err != nil {
				return err
			}
		} else {
			line.Quantity = combined
			if err := repo.Save(ctx, line); err != nil {
				return err
			}
		}

		line.Product = product
		result = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Update sets the line's quantity. The line must belong to the session and the
// new quantity must be coverable by live stock.
func (s *service) Update(ctx context.Context, sessionKey string, itemID uuid.UUID, quantity int) (*models.CartItem, error) {
	if err := validateSessionKey(sessionKey); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	var result *models.CartItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		products := s.products.WithTx(tx)

		line, err := repo.FindByID(ctx, sessionKey, itemID)
		if err != nil {
			return err
		}

		product, err := products.FindByID(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if quantity > product.InStock {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
				WithDetails(map[string]any{
					"product_id": product.ID,
					"requested":  quantity,
					"available":  product.InStock,
				})
		}

		line.Quantity = quantity
		line.Product = nil
		if err := repo.Save(ctx, line); err != nil {
			return err
		}

		line.Product = product
		result = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Remove deletes the session's line.
func (s *service) Remove(ctx context.Context, sessionKey string, itemID uuid.UUID) error {
	if err := validateSessionKey(sessionKey); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteByID(ctx, sessionKey, itemID)
	if err != nil {
		return err
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}

// Clear deletes every line for the session.
func (s *service) Clear(ctx context.Context, sessionKey string) error {
	if err := validateSessionKey(sessionKey); err != nil {
		return err
	}
	return s.repo.DeleteBySession(ctx, sessionKey)
}

// List returns the session's cart with per-line and aggregate totals.
func (s *service) List(ctx context.Context, sessionKey string) (*Summary, error) {
	if err := validateSessionKey(sessionKey); err != nil {
		return nil, err
	}
	items, err := s.repo.FindBySession(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	return newSummary(items), nil
}

func validateSessionKey(sessionKey string) error {
	if strings.TrimSpace(sessionKey) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session key required")
	}
	return nil
}
