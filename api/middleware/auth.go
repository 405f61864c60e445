package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sharifahmad/medimart-backend/api/responses"
	pkgAuth "github.com/sharifahmad/medimart-backend/pkg/auth"
	"github.com/sharifahmad/medimart-backend/pkg/config"
	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
	"github.com/sharifahmad/medimart-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// verified identity. Roles are NOT taken from the token; the role guard
// resolves them against the store per request.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.Verify(cfg, token)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, pkgAuth.ErrTokenExpired) {
					msg = "token expired"
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, msg))
				return
			}

			if claims.Email == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing identity"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserEmail, claims.Email)
			ctx = context.WithValue(ctx, ctxUserName, claims.Name)

			if logg != nil {
				ctx = logg.WithUserEmail(ctx, claims.Email)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
