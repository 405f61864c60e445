package middleware

import (
	"context"
	"net/http"

	"github.com/sharifahmad/medimart-backend/api/responses"
	"github.com/sharifahmad/medimart-backend/pkg/enums"
	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
	"github.com/sharifahmad/medimart-backend/pkg/logger"
)

// RoleResolver looks up the current role for an email. Implemented by the
// users repository; the guard never trusts a role carried in the token.
type RoleResolver interface {
	RoleByEmail(ctx context.Context, email string) (enums.Role, error)
}

// RequireRole re-reads the caller's role from the store on every request and
// rejects anyone whose persisted role does not match. A missing user or an
// unassigned role is a plain forbidden, not a not-found.
func RequireRole(role enums.Role, resolver RoleResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			email := EmailFromContext(ctx)
			if email == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			current, err := resolver.RoleByEmail(ctx, email)
			if err != nil {
				if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
					return
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve role"))
				return
			}

			if current != role {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
				return
			}

			ctx = WithRole(ctx, current.String())
			if logg != nil {
				ctx = logg.WithActorRole(ctx, current.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
