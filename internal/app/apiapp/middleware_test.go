package apiapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Prometheus-P/tee-up-new/internal/domain/model"
	authsvc "github.com/Prometheus-P/tee-up-new/internal/services/adminauth"
)

type noopUserStore struct{}

func (noopUserStore) GetByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	return model.AdminUser{}, nil
}

func (noopUserStore) SaveTOTPSecret(ctx context.Context, adminID int64, secret string) error {
	return nil
}

type noopSessionStore struct{}

func (noopSessionStore) Create(ctx context.Context, sid string, adminID int64, role string, idleTimeout time.Duration) error {
	return nil
}

func (noopSessionStore) Touch(ctx context.Context, sid string, adminID int64, idleTimeout time.Duration) (string, error) {
	return "", nil
}

func (noopSessionStore) Delete(ctx context.Context, sid string) error {
	return nil
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	mw := RequireRole("moderator")

	req := httptest.NewRequest(http.MethodGet, "/admin/moderation/flagged", nil)
	req = req.WithContext(authsvc.WithClaims(context.Background(), authsvc.Claims{
		UserID: 1,
		SID:    "sid-1",
		Role:   "moderator",
	}))
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNoContent)
	}
}

func TestRequireRoleAdminPassesAnyGate(t *testing.T) {
	mw := RequireRole("moderator")

	req := httptest.NewRequest(http.MethodGet, "/admin/moderation/flagged", nil)
	req = req.WithContext(authsvc.WithClaims(context.Background(), authsvc.Claims{
		UserID: 2,
		SID:    "sid-2",
		Role:   "admin",
	}))
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNoContent)
	}
}

func TestRequireRoleRejectsForbiddenRole(t *testing.T) {
	mw := RequireRole("moderator")

	req := httptest.NewRequest(http.MethodGet, "/admin/moderation/flagged", nil)
	req = req.WithContext(authsvc.WithClaims(context.Background(), authsvc.Claims{
		UserID: 3,
		SID:    "sid-3",
		Role:   "viewer",
	}))
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called for forbidden role")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusForbidden)
	}
}

func TestRequireRoleRejectsMissingClaims(t *testing.T) {
	mw := RequireRole("moderator")

	req := httptest.NewRequest(http.MethodGet, "/admin/moderation/flagged", nil)
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called without claims")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	svc := authsvc.NewService(authsvc.Config{JWTSecret: "test"}, noopUserStore{}, noopSessionStore{})
	mw := AuthMiddleware(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/moderation/flagged", nil)
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called without a token")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareUnconfiguredServiceIs500(t *testing.T) {
	mw := AuthMiddleware(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/moderation/flagged", nil)
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called without auth service")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusInternalServerError)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer token", "token", true},
		{"Basic dXNlcg==", "", false},
		{"Bearer", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := extractBearerToken(tt.header)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("extractBearerToken(%q) = %q, %v", tt.header, got, ok)
		}
	}
}
