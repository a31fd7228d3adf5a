package controllers

import (
	"net/http"

	"github.com/everestcrafts/souvenirs-backend/api/responses"
	"github.com/everestcrafts/souvenirs-backend/internal/catalog"
	pkgerrors "github.com/everestcrafts/souvenirs-backend/pkg/errors"
	"github.com/everestcrafts/souvenirs-backend/pkg/logger"
)

// ListCategories returns every category with its product count.
func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		list, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
