package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/everestcrafts/souvenirs-backend/internal/cart"
	"github.com/everestcrafts/souvenirs-backend/internal/inventory"
	"github.com/everestcrafts/souvenirs-backend/pkg/db/models"
	pkgerrors "github.com/everestcrafts/souvenirs-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service converts carts into durable orders.
type Service interface {
	PlaceOrder(ctx context.Context, sessionKey string) (*models.Order, error)
	GetOrder(ctx context.Context, sessionKey string, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, sessionKey string) ([]models.Order, error)
}

type service struct {
	repo      *Repository
	cartRepo  *cart.Repository
	inventory *inventory.Ledger
	tx        txRunner
}

// NewService builds the order service with the required dependencies.
func NewService(repo *Repository, cartRepo *cart.Repository, ledger *inventory.Ledger, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("inventory ledger required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, cartRepo: cartRepo, inventory: ledger, tx: tx}, nil
}

// PlaceOrder snapshots the session's cart into an immutable order, decrements
// stock per line, and empties the cart, all inside one transaction. Any
// failure rolls the whole thing back; a half-placed order is never visible.
func (s *service) PlaceOrder(ctx context.Context, sessionKey string) (*models.Order, error) {
	if strings.TrimSpace(sessionKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session key required")
	}

	var placed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		ledger := s.inventory.WithTx(tx)

		lines, err := cartRepo.FindBySession(ctx, sessionKey)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			if line.Product == nil {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart references a missing product")
			}
			qty := decimal.NewFromInt(int64(line.Quantity))
			total = total.Add(line.Product.Price.Mul(qty))
			items = append(items, models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				// snapshot of the selling price at placement time
				Price: line.Product.Price,
			})
		}

		order := &models.Order{
			SessionKey:  sessionKey,
			TotalAmount: total,
		}
		if err := repo.Create(ctx, order); err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := repo.CreateItems(ctx, items); err != nil {
			return err
		}

		// Conditional decrement per line; contention since the line was added
		// surfaces here and aborts the whole transaction.
		for _, line := range lines {
			if err := ledger.Decrement(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		if err := cartRepo.DeleteBySession(ctx, sessionKey); err != nil {
			return err
		}

		order.Items = items
		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// GetOrder loads the order only when it belongs to the session.
func (s *service) GetOrder(ctx context.Context, sessionKey string, orderID uuid.UUID) (*models.Order, error) {
	if strings.TrimSpace(sessionKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session key required")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	return s.repo.FindByIDAndSession(ctx, sessionKey, orderID)
}

// ListOrders returns the session's order history, newest first.
func (s *service) ListOrders(ctx context.Context, sessionKey string) ([]models.Order, error) {
	if strings.TrimSpace(sessionKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session key required")
	}
	return s.repo.ListBySession(ctx, sessionKey)
}
