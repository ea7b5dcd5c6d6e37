package adminauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Prometheus-P/tee-up-new/internal/domain/model"
	"github.com/Prometheus-P/tee-up-new/internal/pkg/security"
	pgrepo "github.com/Prometheus-P/tee-up-new/internal/repo/postgres"
	redisrepo "github.com/Prometheus-P/tee-up-new/internal/repo/redis"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrSessionExpired  = errors.New("session expired")
	ErrTOTPRequired    = errors.New("totp code required")
	ErrUnavailable     = errors.New("admin auth is unavailable")
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.AdminUser, error)
	SaveTOTPSecret(ctx context.Context, adminID int64, secret string) error
}

type SessionStore interface {
	Create(ctx context.Context, sid string, adminID int64, role string, idleTimeout time.Duration) error
	Touch(ctx context.Context, sid string, adminID int64, idleTimeout time.Duration) (string, error)
	Delete(ctx context.Context, sid string) error
}

type Config struct {
	JWTSecret   string
	AccessTTL   time.Duration
	SessionIdle time.Duration
	TOTPIssuer  string
}

type Service struct {
	secret      []byte
	users       UserStore
	sessions    SessionStore
	accessTTL   time.Duration
	idleTimeout time.Duration
	issuer      string
	configured  bool
	now         func() time.Time
}

type Claims struct {
	UserID int64
	Role   string
	SID    string
}

type tokenClaims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	SID    string `json:"sid"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Admin       AdminInfo `json:"admin"`
}

type AdminInfo struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role"`
}

type TOTPSetupResult struct {
	Secret        string `json:"secret"`
	OTPAuthURL    string `json:"otpauth_url"`
	QRCodeDataURL string `json:"qr_code_data_url"`
}

func NewService(cfg Config, users UserStore, sessions SessionStore) *Service {
	secret := strings.TrimSpace(cfg.JWTSecret)
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	idle := cfg.SessionIdle
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	issuer := strings.TrimSpace(cfg.TOTPIssuer)
	if issuer == "" {
		issuer = "TeeUp Admin"
	}

	return &Service{
		secret:      []byte(secret),
		users:       users,
		sessions:    sessions,
		accessTTL:   accessTTL,
		idleTimeout: idle,
		issuer:      issuer,
		configured:  secret != "" && users != nil && sessions != nil,
		now:         time.Now,
	}
}

func (s *Service) IsConfigured() bool {
	return s != nil && s.configured
}

// Login verifies email+password and, when the account has 2FA enrolled,
// the TOTP code. Lookup failures and bad passwords collapse into
// ErrUnauthorized so the response never reveals which part failed.
func (s *Service) Login(ctx context.Context, email, password, totpCode string) (LoginResult, error) {
	if !s.IsConfigured() {
		return LoginResult{}, ErrUnavailable
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgrepo.ErrAdminUserNotFound) {
			return LoginResult{}, ErrUnauthorized
		}
		return LoginResult{}, fmt.Errorf("find admin user: %w", err)
	}
	if err := security.CheckPassword(user.PasswordHash, password); err != nil {
		return LoginResult{}, ErrUnauthorized
	}

	if strings.TrimSpace(user.TOTPSecret) != "" {
		if strings.TrimSpace(totpCode) == "" {
			return LoginResult{}, ErrTOTPRequired
		}
		if !security.ValidateTOTP(user.TOTPSecret, totpCode, s.now().UTC()) {
			return LoginResult{}, ErrUnauthorized
		}
	}

	sid := uuid.NewString()
	if err := s.sessions.Create(ctx, sid, user.ID, user.Role, s.idleTimeout); err != nil {
		return LoginResult{}, fmt.Errorf("create admin session: %w", err)
	}

	expiresAt := s.now().Add(s.accessTTL)
	token, err := s.sign(user, sid, expiresAt)
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign access token: %w", err)
	}

	return LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Admin: AdminInfo{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			Role:        user.Role,
		},
	}, nil
}

// ValidateAccessToken checks the signature, then touches the backing
// session. The session's role wins over the token's snapshot.
func (s *Service) ValidateAccessToken(ctx context.Context, accessToken string) (Claims, error) {
	if !s.IsConfigured() {
		return Claims{}, ErrUnavailable
	}

	claims, err := s.parse(accessToken)
	if err != nil {
		return Claims{}, ErrUnauthorized
	}

	role, err := s.sessions.Touch(ctx, claims.SID, claims.UserID, s.idleTimeout)
	if err != nil {
		if errors.Is(err, redisrepo.ErrAdminSessionNotFound) {
			return Claims{}, ErrSessionExpired
		}
		return Claims{}, fmt.Errorf("touch admin session: %w", err)
	}
	if strings.TrimSpace(role) != "" {
		claims.Role = role
	}
	return claims, nil
}

func (s *Service) Logout(ctx context.Context, accessToken string) error {
	if !s.IsConfigured() {
		return ErrUnavailable
	}
	claims, err := s.parse(accessToken)
	if err != nil {
		return ErrUnauthorized
	}
	if err := s.sessions.Delete(ctx, claims.SID); err != nil {
		return fmt.Errorf("delete admin session: %w", err)
	}
	return nil
}

// StartTOTPSetup generates and stores a fresh TOTP secret for the admin
// and returns the enrollment material, QR included.
func (s *Service) StartTOTPSetup(ctx context.Context, adminID int64, email string) (TOTPSetupResult, error) {
	if !s.IsConfigured() {
		return TOTPSetupResult{}, ErrUnavailable
	}

	secret, otpURL, err := security.GenerateTOTPSecret(s.issuer, email)
	if err != nil {
		return TOTPSetupResult{}, fmt.Errorf("generate totp secret: %w", err)
	}
	if err := s.users.SaveTOTPSecret(ctx, adminID, secret); err != nil {
		return TOTPSetupResult{}, fmt.Errorf("store totp secret: %w", err)
	}
	qr, err := security.MakeQRCodeDataURL(otpURL, 256)
	if err != nil {
		return TOTPSetupResult{}, fmt.Errorf("render totp qr: %w", err)
	}

	return TOTPSetupResult{
		Secret:        secret,
		OTPAuthURL:    otpURL,
		QRCodeDataURL: qr,
	}, nil
}

func (s *Service) sign(user model.AdminUser, sid string, expiresAt time.Time) (string, error) {
	claims := tokenClaims{
		UserID: user.ID,
		Role:   user.Role,
		SID:    sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) parse(accessToken string) (Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil {
		return Claims{}, ErrUnauthorized
	}
	tc, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return Claims{}, ErrUnauthorized
	}
	if tc.UserID <= 0 || strings.TrimSpace(tc.SID) == "" {
		return Claims{}, ErrUnauthorized
	}
	return Claims{
		UserID: tc.UserID,
		Role:   strings.TrimSpace(tc.Role),
		SID:    strings.TrimSpace(tc.SID),
	}, nil
}
