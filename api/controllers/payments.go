package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sharifahmad/medimart-backend/api/middleware"
	"github.com/sharifahmad/medimart-backend/api/responses"
	"github.com/sharifahmad/medimart-backend/api/validators"
	paymentsvc "github.com/sharifahmad/medimart-backend/internal/payments"
	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
	"github.com/sharifahmad/medimart-backend/pkg/logger"
)

type paymentIntentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreatePaymentIntent exchanges an amount for a gateway client secret.
// Non-positive amounts are rejected before the gateway is contacted.
func CreatePaymentIntent(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload paymentIntentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		clientSecret, err := svc.CreateIntent(r.Context(), payload.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, paymentIntentResponse{ClientSecret: clientSecret})
	}
}

type createPaymentRequest struct {
	SellerEmail string          `json:"sellerEmail" validate:"required,email"`
	Category    string          `json:"category" validate:"required,max=120"`
	Amount      decimal.Decimal `json:"amount"`
}

// CreatePayment records a pending payment for the calling buyer.
func CreatePayment(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerEmail := middleware.EmailFromContext(r.Context())

		var payload createPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Create(r.Context(), buyerEmail, paymentsvc.CreatePaymentInput{
			SellerEmail: payload.SellerEmail,
			Category:    payload.Category,
			Amount:      payload.Amount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

// MarkPaymentPaid transitions a payment pending -> paid. Admin only.
func MarkPaymentPaid(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment id"))
			return
		}

		payment, err := svc.MarkPaid(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payment)
	}
}
