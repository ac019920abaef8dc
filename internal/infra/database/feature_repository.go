package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/scholaris/intake-api/internal/entity"
)

type FeatureRepository struct {
	DB *sql.DB
}

func NewFeatureRepository(db *sql.DB) *FeatureRepository {
	return &FeatureRepository{DB: db}
}

func (r *FeatureRepository) Create(ctx context.Context, f *entity.Feature) error {
	query := `
		INSERT INTO features (id, title, description, votes, created_at, updated_at)
		VALUES ($1, $2, $3, 0, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query, f.ID, f.Title, nullString(f.Description), f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert feature: %w", err)
	}
	return nil
}

func (r *FeatureRepository) FindByID(ctx context.Context, id string) (*entity.Feature, error) {
	query := `
		SELECT id, title, description, votes, created_at, updated_at
		FROM features
		WHERE id = $1
	`

	var f entity.Feature
	var description sql.NullString

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&f.ID, &f.Title, &description, &f.Votes, &f.CreatedAt, &f.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrFeatureNotFound
	}
	if err != nil {
		return nil, err
	}
	f.Description = description.String

	return &f, nil
}

func (r *FeatureRepository) List(ctx context.Context) ([]*entity.Feature, error) {
	query := `
		SELECT id, title, description, votes, created_at, updated_at
		FROM features
		ORDER BY votes DESC, created_at ASC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}
	defer rows.Close()

	var out []*entity.Feature
	for rows.Next() {
		var f entity.Feature
		var description sql.NullString
		if err := rows.Scan(&f.ID, &f.Title, &description, &f.Votes, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		f.Description = description.String
		out = append(out, &f)
	}
	return out, rows.Err()
}

// HasVoted matches either dedup key for the feature: same email or same
// client IP.
func (r *FeatureRepository) HasVoted(ctx context.Context, featureID, email, ip string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM feature_votes
			WHERE feature_id = $1 AND (email = $2 OR client_ip = $3)
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, featureID, email, ip).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CreateVote inserts the vote row and bumps the denormalized counter in
// one transaction; the counter update is an atomic in-place add, never a
// read-then-write.
func (r *FeatureRepository) CreateVote(ctx context.Context, v *entity.FeatureVote) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin vote tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO feature_votes (id, feature_id, email, client_ip, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, v.ID, v.FeatureID, v.Email, v.ClientIP, v.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrAlreadyVoted
		}
		return fmt.Errorf("insert vote: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE features SET votes = votes + 1, updated_at = NOW() WHERE id = $1
	`, v.FeatureID)
	if err != nil {
		return fmt.Errorf("increment vote counter: %w", err)
	}

	return tx.Commit()
}
