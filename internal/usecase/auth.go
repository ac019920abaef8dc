package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/scholaris/intake-api/internal/entity"
)

const (
	sessionTTL    = 24 * time.Hour
	resetTokenTTL = 30 * time.Minute
)

// AdminAuthUseCase covers login, session validation and the persisted
// password-reset flow. Reset tokens live in the store with an expiry so
// they survive restarts; no in-process token map.
type AdminAuthUseCase struct {
	Admins   entity.AdminRepositoryInterface
	Sessions entity.SessionRepositoryInterface
	Tokens   entity.ResetTokenRepositoryInterface
	Mailer   ResetMailer
	Logger   *zap.Logger
}

// ResetMailer sends the reset link; best-effort like every other
// outbound mail.
type ResetMailer interface {
	SendPasswordReset(to, token string) error
}

func NewAdminAuthUseCase(
	admins entity.AdminRepositoryInterface,
	sessions entity.SessionRepositoryInterface,
	tokens entity.ResetTokenRepositoryInterface,
	mailer ResetMailer,
	logger *zap.Logger,
) *AdminAuthUseCase {
	return &AdminAuthUseCase{Admins: admins, Sessions: sessions, Tokens: tokens, Mailer: mailer, Logger: logger}
}

func (uc *AdminAuthUseCase) Login(ctx context.Context, email, password string) (*entity.Session, error) {
	admin, err := uc.Admins.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if err == entity.ErrAdminNotFound {
			return nil, &DomainError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password."}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, &DomainError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password."}
	}

	session := &entity.Session{
		Token:     newToken(),
		AdminID:   admin.ID,
		ExpiresAt: time.Now().Add(sessionTTL),
		CreatedAt: time.Now(),
	}
	if err := uc.Sessions.Create(ctx, session); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	return session, nil
}

func (uc *AdminAuthUseCase) Logout(ctx context.Context, token string) error {
	if err := uc.Sessions.DeleteByToken(ctx, token); err != nil && err != entity.ErrSessionNotFound {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return nil
}

// Authorize is the boolean gate consumed by the admin middleware.
func (uc *AdminAuthUseCase) Authorize(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	session, err := uc.Sessions.FindByToken(ctx, token)
	if err != nil {
		if err == entity.ErrSessionNotFound {
			return false, nil
		}
		return false, err
	}
	return time.Now().Before(session.ExpiresAt), nil
}

// RequestPasswordReset always reports success to the caller so the
// endpoint cannot be used to probe which emails exist.
func (uc *AdminAuthUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	admin, err := uc.Admins.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if err == entity.ErrAdminNotFound {
			return nil
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	token := &entity.ResetToken{
		Token:     newToken(),
		AdminID:   admin.ID,
		ExpiresAt: time.Now().Add(resetTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := uc.Tokens.Create(ctx, token); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	if uc.Mailer != nil {
		if err := uc.Mailer.SendPasswordReset(admin.Email, token.Token); err != nil {
			uc.Logger.Warn("reset mail failed", zap.String("admin_id", admin.ID), zap.Error(err))
		}
	}

	return nil
}

func (uc *AdminAuthUseCase) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 10 {
		return ValidationErrors{{Field: "password", Message: "must have at least 10 characters"}}
	}

	rt, err := uc.Tokens.Consume(ctx, token)
	if err != nil {
		switch err {
		case entity.ErrTokenNotFound, entity.ErrTokenExpired:
			return &DomainError{Code: "INVALID_TOKEN", Message: "Reset link is invalid or expired."}
		default:
			return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return &TechnicalError{Code: "HASH_ERROR", Message: err.Error()}
	}

	if err := uc.Admins.UpdatePassword(ctx, rt.AdminID, string(hash)); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	return nil
}

func newToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}
