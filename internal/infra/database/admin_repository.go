package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/scholaris/intake-api/internal/entity"
)

type AdminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	query := `SELECT id, email, password_hash, created_at FROM admins WHERE email = $1`

	var a entity.Admin
	err := r.DB.QueryRowContext(ctx, query, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, entity.ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, adminID, passwordHash string) error {
	query := `UPDATE admins SET password_hash = $1 WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, passwordHash, adminID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrAdminNotFound
	}
	return nil
}

type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *entity.Session) error {
	query := `
		INSERT INTO sessions (token, admin_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, s.Token, s.AdminID, s.ExpiresAt, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	query := `SELECT token, admin_id, expires_at, created_at FROM sessions WHERE token = $1`

	var s entity.Session
	err := r.DB.QueryRowContext(ctx, query, token).Scan(&s.Token, &s.AdminID, &s.ExpiresAt, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, entity.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrSessionNotFound
	}
	return nil
}

type ResetTokenRepository struct {
	DB *sql.DB
}

func NewResetTokenRepository(db *sql.DB) *ResetTokenRepository {
	return &ResetTokenRepository{DB: db}
}

func (r *ResetTokenRepository) Create(ctx context.Context, t *entity.ResetToken) error {
	query := `
		INSERT INTO reset_tokens (token, admin_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, t.Token, t.AdminID, t.ExpiresAt, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert reset token: %w", err)
	}
	return nil
}

// Consume deletes the token in the same statement so it is single-use
// even under concurrent confirmation attempts.
func (r *ResetTokenRepository) Consume(ctx context.Context, token string) (*entity.ResetToken, error) {
	query := `
		DELETE FROM reset_tokens
		WHERE token = $1
		RETURNING token, admin_id, expires_at, created_at
	`

	var t entity.ResetToken
	err := r.DB.QueryRowContext(ctx, query, token).Scan(&t.Token, &t.AdminID, &t.ExpiresAt, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, entity.ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	if time.Now().After(t.ExpiresAt) {
		return nil, entity.ErrTokenExpired
	}
	return &t, nil
}
