package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sharifahmad/medimart-backend/pkg/enums"
	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
)

type stubResolver struct {
	role enums.Role
	err  error
}

func (s stubResolver) RoleByEmail(ctx context.Context, email string) (enums.Role, error) {
	return s.role, s.err
}

func TestRequireRoleRejectsMissingIdentity(t *testing.T) {
	invoked := false
	handler := RequireRole(enums.RoleAdmin, stubResolver{role: enums.RoleAdmin}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if invoked {
		t.Fatal("handler must not run without credentials")
	}
}

func TestRequireRoleRejectsMismatch(t *testing.T) {
	invoked := false
	handler := RequireRole(enums.RoleAdmin, stubResolver{role: enums.RoleBuyer}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserEmail(req.Context(), "buyer@example.com"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
	if invoked {
		t.Fatal("handler must not run for the wrong role")
	}
}

func TestRequireRoleRejectsUnknownUser(t *testing.T) {
	resolver := stubResolver{err: pkgerrors.New(pkgerrors.CodeNotFound, "user not found")}
	handler := RequireRole(enums.RoleSeller, resolver, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for an unknown user")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserEmail(req.Context(), "ghost@example.com"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestRequireRoleSurfacesResolverFailure(t *testing.T) {
	resolver := stubResolver{err: errors.New("store unavailable")}
	handler := RequireRole(enums.RoleSeller, resolver, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run when the role lookup fails")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserEmail(req.Context(), "seller@example.com"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestRequireRoleSeedsRoleContext(t *testing.T) {
	var seen string
	handler := RequireRole(enums.RoleAdmin, stubResolver{role: enums.RoleAdmin}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserEmail(req.Context(), "admin@example.com"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if seen != enums.RoleAdmin.String() {
		t.Fatalf("expected admin role in context, got %q", seen)
	}
}
