package controllers

import (
	"net/http"
	"time"

	"github.com/sharifahmad/medimart-backend/api/responses"
	"github.com/sharifahmad/medimart-backend/api/validators"
	"github.com/sharifahmad/medimart-backend/pkg/auth"
	"github.com/sharifahmad/medimart-backend/pkg/config"
	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
	"github.com/sharifahmad/medimart-backend/pkg/logger"
)

type tokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,max=200"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// IssueToken signs a token for the supplied identity claim. The identity
// is taken at face value; authorization happens per request against the
// stored role, never against the token.
func IssueToken(cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload tokenRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := auth.Issue(cfg, time.Now(), auth.IdentityClaim{
			Email: payload.Email,
			Name:  payload.Name,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issuing token"))
			return
		}

		responses.WriteSuccess(w, tokenResponse{
			Token:     token,
			ExpiresIn: int64(cfg.TokenTTL().Seconds()),
		})
	}
}
