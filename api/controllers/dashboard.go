package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sharifahmad/medimart-backend/api/middleware"
	"github.com/sharifahmad/medimart-backend/api/responses"
	paymentsvc "github.com/sharifahmad/medimart-backend/internal/payments"
	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
	"github.com/sharifahmad/medimart-backend/pkg/logger"
)

// AdminDashboard reduces every payment record into the admin summary.
func AdminDashboard(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.AdminDashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// SellerDashboard reduces one seller's payments. The path email must match
// the authenticated identity.
func SellerDashboard(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "email")))
		if email != middleware.EmailFromContext(r.Context()) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "cannot read another seller's dashboard"))
			return
		}

		summary, err := svc.SellerDashboard(r.Context(), email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
