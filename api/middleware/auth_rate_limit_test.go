package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeRateStore struct {
	counts map[string]int64
}

func newFakeRateStore() *fakeRateStore {
	return &fakeRateStore{counts: make(map[string]int64)}
}

func (f *fakeRateStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	f.counts[key]++
	return f.counts[key], nil
}

func tokenRequest(email string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(`{"email":"`+email+`"}`))
	req.RemoteAddr = "203.0.113.7:1234"
	return req
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestTokenRateLimitBlocksPerIP(t *testing.T) {
	policy := NewTokenRateLimitPolicy("token", time.Minute, 2, 0)
	handler := TokenRateLimit(policy, newFakeRateStore(), nil)(okHandler())

	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, tokenRequest("buyer@example.com"))
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, resp.Code)
		}
	}

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, tokenRequest("buyer@example.com"))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
}

func TestTokenRateLimitBlocksPerEmail(t *testing.T) {
	policy := NewTokenRateLimitPolicy("token", time.Minute, 0, 1)
	store := newFakeRateStore()
	handler := TokenRateLimit(policy, store, nil)(okHandler())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, tokenRequest("Buyer@Example.com"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	// Same address with different casing shares the counter.
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, tokenRequest("buyer@example.com"))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}

	for key := range store.counts {
		if strings.Contains(key, "example.com") {
			t.Fatalf("raw email leaked into key %q", key)
		}
	}
}

func TestTokenRateLimitDistinctEmailsDoNotShareCounters(t *testing.T) {
	policy := NewTokenRateLimitPolicy("token", time.Minute, 0, 1)
	handler := TokenRateLimit(policy, newFakeRateStore(), nil)(okHandler())

	for _, email := range []string{"a@example.com", "b@example.com"} {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, tokenRequest(email))
		if resp.Code != http.StatusOK {
			t.Fatalf("email %s: expected 200, got %d", email, resp.Code)
		}
	}
}

func TestTokenRateLimitPreservesRequestBody(t *testing.T) {
	policy := NewTokenRateLimitPolicy("token", time.Minute, 0, 5)
	var body string
	handler := TokenRateLimit(policy, newFakeRateStore(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.WriteHeader(http.StatusOK)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, tokenRequest("buyer@example.com"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body != `{"email":"buyer@example.com"}` {
		t.Fatalf("downstream body altered: %q", body)
	}
}

func TestTokenRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	policy := NewTokenRateLimitPolicy("token", 0, 0, 0)
	handler := TokenRateLimit(policy, newFakeRateStore(), nil)(okHandler())

	for i := 0; i < 10; i++ {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, tokenRequest("buyer@example.com"))
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.Code)
		}
	}
}
