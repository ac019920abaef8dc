package entity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAdminNotFound   = errors.New("admin not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrTokenNotFound   = errors.New("reset token not found")
	ErrTokenExpired    = errors.New("reset token expired")
)

// Admin is an internal user of the submissions dashboard.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session gates the admin surface. Expired sessions are equivalent to
// missing ones and are removed by the sweep worker.
type Session struct {
	Token     string    `json:"token"`
	AdminID   string    `json:"admin_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// ResetToken is a single-use password-reset credential persisted with an
// expiry so it survives restarts and is shared across instances.
type ResetToken struct {
	Token     string    `json:"token"`
	AdminID   string    `json:"admin_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	UpdatePassword(ctx context.Context, adminID, passwordHash string) error
}

type SessionRepositoryInterface interface {
	Create(ctx context.Context, s *Session) error
	FindByToken(ctx context.Context, token string) (*Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

type ResetTokenRepositoryInterface interface {
	Create(ctx context.Context, t *ResetToken) error
	Consume(ctx context.Context, token string) (*ResetToken, error)
}
