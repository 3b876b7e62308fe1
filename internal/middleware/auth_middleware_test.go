package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/puscasale/MAP-SocialNetwork/internal/auth"
	"github.com/puscasale/MAP-SocialNetwork/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecretKey: "test-secret-key",
		JWTExpiry:    15 * time.Minute,
	}
}

func TestAuthMiddlewarePassesValidToken(t *testing.T) {
	cfg := testAuthConfig()
	token, err := auth.GenerateToken(42, "ana@example.com", cfg)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	var gotUserID uint
	var gotEmail string
	handler := AuthMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserIDFromContext(r.Context())
		gotEmail, _ = GetEmailFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if gotUserID != 42 {
		t.Errorf("user ID from context = %d, want 42", gotUserID)
	}
	if gotEmail != "ana@example.com" {
		t.Errorf("email from context = %q, want %q", gotEmail, "ana@example.com")
	}
}

func TestAuthMiddlewareRejects(t *testing.T) {
	cfg := testAuthConfig()
	otherToken, err := auth.GenerateToken(1, "x@example.com", config.AuthConfig{
		JWTSecretKey: "a-different-key",
		JWTExpiry:    15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer header", "Basic dXNlcjpwYXNz"},
		{"malformed bearer", "Bearer"},
		{"garbage token", "Bearer not.a.token"},
		{"token signed with another key", "Bearer " + otherToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := AuthMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
			}
			if called {
				t.Error("next handler must not run for a rejected request")
			}
		})
	}
}

func TestGetUserIDFromContextAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if _, ok := GetUserIDFromContext(req.Context()); ok {
		t.Error("GetUserIDFromContext() = ok on a bare context")
	}
}
