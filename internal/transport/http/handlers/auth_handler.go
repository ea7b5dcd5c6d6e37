package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	authsvc "github.com/Prometheus-P/tee-up-new/internal/services/adminauth"
	ratesvc "github.com/Prometheus-P/tee-up-new/internal/services/rate"
	"github.com/Prometheus-P/tee-up-new/internal/transport/http/dto"
	httperrors "github.com/Prometheus-P/tee-up-new/internal/transport/http/errors"
)

type AuthHandler struct {
	service *authsvc.Service
	limiter *ratesvc.Limiter
}

func NewAuthHandler(service *authsvc.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) AttachLoginLimiter(limiter *ratesvc.Limiter) {
	h.limiter = limiter
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.service == nil || !h.service.IsConfigured() {
		writeInternal(w, "AUTH_UNAVAILABLE", "admin auth is unavailable")
		return
	}

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "INVALID_BODY", "request body must be valid json")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeBadRequest(w, "INVALID_CREDENTIALS_PAYLOAD", "email and password are required")
		return
	}

	if retryAfter, ok, err := h.limiter.AllowLogin(r.Context(), req.Email); err == nil && !ok {
		httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
			Code:          "LOGIN_RATE_LIMITED",
			Message:       "too many login attempts",
			RetryAfterSec: retryAfter,
		})
		return
	}

	res, err := h.service.Login(r.Context(), req.Email, req.Password, req.TOTPCode)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrTOTPRequired):
			writeUnauthorized(w, "TOTP_REQUIRED", "a totp code is required for this account")
		case errors.Is(err, authsvc.ErrUnauthorized):
			writeUnauthorized(w, "UNAUTHORIZED", "invalid credentials")
		default:
			writeInternal(w, "LOGIN_FAILED", "failed to log in")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, res)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.service == nil || !h.service.IsConfigured() {
		writeInternal(w, "AUTH_UNAVAILABLE", "admin auth is unavailable")
		return
	}

	token := bearerToken(r)
	if token == "" {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if err := h.service.Logout(r.Context(), token); err != nil {
		if errors.Is(err, authsvc.ErrUnauthorized) {
			writeUnauthorized(w, "UNAUTHORIZED", "invalid token")
			return
		}
		writeInternal(w, "LOGOUT_FAILED", "failed to log out")
		return
	}

	httperrors.Write(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// TOTPSetup starts 2FA enrollment for the authenticated admin.
func (h *AuthHandler) TOTPSetup(w http.ResponseWriter, r *http.Request) {
	if h.service == nil || !h.service.IsConfigured() {
		writeInternal(w, "AUTH_UNAVAILABLE", "admin auth is unavailable")
		return
	}

	claims, ok := authsvc.ClaimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "INVALID_BODY", "request body must be valid json")
		return
	}

	res, err := h.service.StartTOTPSetup(r.Context(), claims.UserID, req.Email)
	if err != nil {
		writeInternal(w, "TOTP_SETUP_FAILED", "failed to start totp enrollment")
		return
	}

	httperrors.Write(w, http.StatusOK, res)
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
