package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/everestcrafts/souvenirs-backend/api/responses"
	ordersvc "github.com/everestcrafts/souvenirs-backend/internal/orders"
	pkgerrors "github.com/everestcrafts/souvenirs-backend/pkg/errors"
	"github.com/everestcrafts/souvenirs-backend/pkg/logger"
)

// PlaceOrder converts the session's cart into an order.
func PlaceOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionKey, ok := requireSession(w, r, logg)
		if !ok {
			return
		}

		order, err := svc.PlaceOrder(r.Context(), sessionKey)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toOrderView(order))
	}
}

// GetOrder returns one of the session's orders with its items.
func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionKey, ok := requireSession(w, r, logg)
		if !ok {
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		order, err := svc.GetOrder(r.Context(), sessionKey, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toOrderView(order))
	}
}

// ListOrders returns the session's order history, newest first.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionKey, ok := requireSession(w, r, logg)
		if !ok {
			return
		}

		orders, err := svc.ListOrders(r.Context(), sessionKey)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"orders": toOrderViews(orders),
			"count":  len(orders),
		})
	}
}
