package in

import (
	"context"
	"time"
)

type AdminToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AdminClaims struct {
	Username  string
	SessionID string
}

type AdminAuthUseCase interface {
	Login(ctx context.Context, username, password string) (*AdminToken, error)
	Verify(token string) (*AdminClaims, error)
}
