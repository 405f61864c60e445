package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sharifahmad/medimart-backend/api/responses"
	"github.com/sharifahmad/medimart-backend/api/validators"
	promotionsvc "github.com/sharifahmad/medimart-backend/internal/promotions"
	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
	"github.com/sharifahmad/medimart-backend/pkg/logger"
)

type promotionRequestBody struct {
	ItemName string `json:"itemName" validate:"required,max=200"`
}

// RequestPromotion upserts a pending promotion for an item name.
func RequestPromotion(svc promotionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload promotionRequestBody
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		promotion, err := svc.Request(r.Context(), payload.ItemName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, promotion)
	}
}

// DecidePromotion runs the accept toggle: pending promotions become
// accepted, accepted ones are retired. Admin only.
func DecidePromotion(svc promotionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid promotion id"))
			return
		}

		outcome, err := svc.Accept(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, outcome)
	}
}

// ListPromotions returns every promotion request. Admin only.
func ListPromotions(svc promotionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		promotions, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, promotions)
	}
}

// Banner returns the public feed of accepted promotions.
func Banner(svc promotionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		promotions, err := svc.ListAccepted(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, promotions)
	}
}
