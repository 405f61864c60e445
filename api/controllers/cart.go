package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sharifahmad/medimart-backend/api/middleware"
	"github.com/sharifahmad/medimart-backend/api/responses"
	"github.com/sharifahmad/medimart-backend/api/validators"
	cartsvc "github.com/sharifahmad/medimart-backend/internal/cart"
	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
	"github.com/sharifahmad/medimart-backend/pkg/logger"
)

type addCartEntryRequest struct {
	ItemName string          `json:"itemName" validate:"required,max=200"`
	Category string          `json:"category" validate:"required,max=120"`
	Price    decimal.Decimal `json:"price"`
}

// AddCartEntry appends one add-to-cart action for the calling buyer.
func AddCartEntry(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerEmail := middleware.EmailFromContext(r.Context())

		var payload addCartEntryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.Add(r.Context(), buyerEmail, cartsvc.AddEntryInput{
			ItemName: payload.ItemName,
			Category: payload.Category,
			Price:    payload.Price,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// GetCart returns the consolidated cart. The path email must match the
// authenticated identity; buyers cannot read each other's carts.
func GetCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "email")))
		if email != middleware.EmailFromContext(r.Context()) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "cannot read another buyer's cart"))
			return
		}

		view, err := svc.Get(r.Context(), email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// RemoveCartEntry deletes one of the calling buyer's cart entries.
func RemoveCartEntry(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerEmail := middleware.EmailFromContext(r.Context())

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cart entry id"))
			return
		}

		if err := svc.Remove(r.Context(), buyerEmail, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}
