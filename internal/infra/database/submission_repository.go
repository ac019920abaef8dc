package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/scholaris/intake-api/internal/entity"
)

type SubmissionRepository struct {
	DB *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *entity.Submission) error {
	query := `
		INSERT INTO submissions (
			id, kind, name, email, role, institution, team_size, message,
			preferred_date, client_ip, user_agent, source, status, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.DB.ExecContext(ctx, query,
		s.ID,
		s.Kind,
		s.Name,
		s.Email,
		nullString(s.Role),
		nullString(s.Institution),
		nullString(s.TeamSize),
		nullString(s.Message),
		nullString(s.PreferredDate),
		s.ClientIP,
		s.UserAgent,
		nullString(s.Source),
		s.Status,
		nullString(s.Notes),
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}

	return nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*entity.Submission, error) {
	query := selectSubmission + ` WHERE id = $1`
	s, err := scanSubmission(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrSubmissionNotFound
	}
	return s, err
}

func (r *SubmissionRepository) List(ctx context.Context, f entity.SubmissionFilter) ([]*entity.Submission, error) {
	query := selectSubmission + ` WHERE 1=1`
	args := []any{}

	if f.Kind != "" {
		args = append(args, f.Kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []*entity.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id, status, notes string) error {
	query := `
		UPDATE submissions
		SET status = $1, notes = COALESCE(NULLIF($2, ''), notes), updated_at = NOW()
		WHERE id = $3
	`
	res, err := r.DB.ExecContext(ctx, query, status, notes, id)
	if err != nil {
		return fmt.Errorf("update submission status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrSubmissionNotFound
	}
	return nil
}

const selectSubmission = `
	SELECT id, kind, name, email, role, institution, team_size, message,
	       preferred_date, client_ip, user_agent, source, status, notes,
	       created_at, updated_at
	FROM submissions
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*entity.Submission, error) {
	var s entity.Submission
	var role, institution, teamSize, message, preferredDate, source, notes sql.NullString

	err := row.Scan(
		&s.ID, &s.Kind, &s.Name, &s.Email, &role, &institution, &teamSize,
		&message, &preferredDate, &s.ClientIP, &s.UserAgent, &source,
		&s.Status, &notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Role = role.String
	s.Institution = institution.String
	s.TeamSize = teamSize.String
	s.Message = message.String
	s.PreferredDate = preferredDate.String
	s.Source = source.String
	s.Notes = notes.String

	return &s, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
