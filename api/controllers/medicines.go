package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sharifahmad/medimart-backend/api/middleware"
	"github.com/sharifahmad/medimart-backend/api/responses"
	"github.com/sharifahmad/medimart-backend/api/validators"
	medicinesvc "github.com/sharifahmad/medimart-backend/internal/medicines"
	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
	"github.com/sharifahmad/medimart-backend/pkg/logger"
)

type createMedicineRequest struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Category string          `json:"category" validate:"required,max=120"`
	Price    decimal.Decimal `json:"price"`
}

// CreateMedicine adds a catalog listing owned by the calling seller.
func CreateMedicine(svc medicinesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerEmail := middleware.EmailFromContext(r.Context())

		var payload createMedicineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		medicine, err := svc.Create(r.Context(), sellerEmail, medicinesvc.CreateMedicineInput{
			Name:     payload.Name,
			Category: payload.Category,
			Price:    payload.Price,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, medicine)
	}
}

// ListMedicines returns the public catalog, optionally filtered by the
// category query parameter.
func ListMedicines(svc medicinesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medicines, err := svc.List(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, medicines)
	}
}

// DeleteMedicine removes one of the calling seller's own listings.
func DeleteMedicine(svc medicinesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerEmail := middleware.EmailFromContext(r.Context())

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid medicine id"))
			return
		}

		if err := svc.Delete(r.Context(), sellerEmail, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
