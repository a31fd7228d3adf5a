package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/everestcrafts/souvenirs-backend/api/responses"
	"github.com/everestcrafts/souvenirs-backend/api/validators"
	"github.com/everestcrafts/souvenirs-backend/internal/catalog"
	"github.com/everestcrafts/souvenirs-backend/pkg/enums"
	pkgerrors "github.com/everestcrafts/souvenirs-backend/pkg/errors"
	"github.com/everestcrafts/souvenirs-backend/pkg/logger"
)

const maxSearchLen = 120

// ListProducts is the browse endpoint: search, filters, sorting, paging.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		input, err := parseListProductsQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListProducts(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"products": toProductViews(items),
			"count":    len(items),
		})
	}
}

// GetProduct returns one product with its category attached.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toProductView(product))
	}
}

func parseListProductsQuery(r *http.Request) (*catalog.ListProductsInput, error) {
	sort, err := enums.ParseProductSort(strings.TrimSpace(r.URL.Query().Get("sort")))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort").
			WithDetails(map[string]any{"field": "sort"})
	}

	limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
	if err != nil {
		return nil, err
	}
	offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1_000_000)
	if err != nil {
		return nil, err
	}
	priceMin, err := validators.ParseQueryDecimal(r, "price_min")
	if err != nil {
		return nil, err
	}
	priceMax, err := validators.ParseQueryDecimal(r, "price_max")
	if err != nil {
		return nil, err
	}
	bestsellers, err := validators.ParseQueryBool(r, "bestsellers_only")
	if err != nil {
		return nil, err
	}
	inStock, err := validators.ParseQueryBool(r, "in_stock_only")
	if err != nil {
		return nil, err
	}

	return &catalog.ListProductsInput{
		Filters: catalog.ProductListFilters{
			Query:           validators.SanitizeString(r.URL.Query().Get("q"), maxSearchLen),
			CategorySlug:    validators.SanitizeString(r.URL.Query().Get("category"), maxSearchLen),
			PriceMin:        priceMin,
			PriceMax:        priceMax,
			BestsellersOnly: bestsellers,
			InStockOnly:     inStock,
		},
		Sort:   sort,
		Limit:  limit,
		Offset: offset,
	}, nil
}
