package admin_auth_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clinicdesk/slot-booking-service/internal/config"
	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/clinicdesk/slot-booking-service/internal/core/ports/in"
	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AdminClaims struct {
	Username  string `json:"username"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

type AdminAuthService struct {
	admins map[string]string
	secret []byte
	ttl    time.Duration
	logger out.LoggerPort
	now    func() time.Time
}

func NewAdminAuthService(cfg *config.Config, logger out.LoggerPort) *AdminAuthService {
	admins := make(map[string]string, len(cfg.Auth.Admins))
	for _, admin := range cfg.Auth.Admins {
		admins[admin.Username] = admin.PasswordHash
	}

	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &AdminAuthService{
		admins: admins,
		secret: []byte(cfg.Auth.JWTSecret),
		ttl:    ttl,
		logger: logger.WithModule("AdminAuthService"),
		now:    time.Now,
	}
}

func (s *AdminAuthService) Login(ctx context.Context, username, password string) (*in.AdminToken, error) {
	hash, exists := s.admins[username]
	if !exists || len(s.secret) == 0 {
		s.logger.Warn("admin.login.rejected", out.LogFields{
			"username": username,
		})
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		s.logger.Warn("admin.login.rejected", out.LogFields{
			"username": username,
		})
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := AdminClaims{
		Username:  username,
		SessionID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("admin.login.sign_failed: %w", err)
	}

	s.logger.Info("admin.login.succeeded", out.LogFields{
		"username":  username,
		"sessionId": claims.SessionID,
	})

	return &in.AdminToken{Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *AdminAuthService) Verify(token string) (*in.AdminClaims, error) {
	if token == "" || len(s.secret) == 0 {
		return nil, domain.ErrInvalidCredentials
	}

	claims := &AdminClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.Join(domain.ErrInvalidCredentials, err)
	}

	if _, exists := s.admins[claims.Username]; !exists {
		return nil, domain.ErrInvalidCredentials
	}

	return &in.AdminClaims{Username: claims.Username, SessionID: claims.SessionID}, nil
}
