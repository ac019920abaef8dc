package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/scholaris/intake-api/internal/entity"
)

type SubscriptionRepository struct {
	DB *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

// Subscribe upserts on the email key. A missing record becomes a new
// active one; an inactive record flips back to active with the
// unsubscribe timestamp cleared; an active record is untouched. The
// prior CTE reads the state before the upsert so the outcome is decided
// in the same round trip.
func (r *SubscriptionRepository) Subscribe(ctx context.Context, email string) (entity.SubscribeOutcome, *entity.EmailSubscription, error) {
	query := `
		WITH prior AS (
			SELECT active FROM email_subscriptions WHERE email = $2
		), up AS (
			INSERT INTO email_subscriptions (id, email, active, confirmed_at, created_at, updated_at)
			VALUES ($1, $2, TRUE, NOW(), NOW(), NOW())
			ON CONFLICT (email)
			DO UPDATE SET
				active = TRUE,
				confirmed_at = CASE WHEN email_subscriptions.active THEN email_subscriptions.confirmed_at ELSE NOW() END,
				unsubscribed_at = CASE WHEN email_subscriptions.active THEN email_subscriptions.unsubscribed_at ELSE NULL END,
				updated_at = NOW()
			RETURNING id, email, active, confirmed_at, unsubscribed_at, created_at, updated_at
		)
		SELECT up.id, up.email, up.active, up.confirmed_at, up.unsubscribed_at,
		       up.created_at, up.updated_at, (SELECT active FROM prior)
		FROM up
	`

	var sub entity.EmailSubscription
	var unsubscribedAt sql.NullTime
	var priorActive sql.NullBool

	err := r.DB.QueryRowContext(ctx, query, uuid.New().String(), email).Scan(
		&sub.ID, &sub.Email, &sub.Active, &sub.ConfirmedAt, &unsubscribedAt,
		&sub.CreatedAt, &sub.UpdatedAt, &priorActive,
	)
	if err != nil {
		return "", nil, fmt.Errorf("subscribe %s: %w", email, err)
	}
	if unsubscribedAt.Valid {
		sub.UnsubscribedAt = &unsubscribedAt.Time
	}

	switch {
	case !priorActive.Valid:
		return entity.SubscribeCreated, &sub, nil
	case !priorActive.Bool:
		return entity.SubscribeReactivated, &sub, nil
	default:
		return entity.SubscribeNoop, &sub, nil
	}
}

func (r *SubscriptionRepository) Unsubscribe(ctx context.Context, email string) error {
	query := `
		UPDATE email_subscriptions
		SET active = FALSE, unsubscribed_at = NOW(), updated_at = NOW()
		WHERE email = $1
	`
	res, err := r.DB.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("unsubscribe %s: %w", email, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepository) FindByEmail(ctx context.Context, email string) (*entity.EmailSubscription, error) {
	query := `
		SELECT id, email, active, confirmed_at, unsubscribed_at, created_at, updated_at
		FROM email_subscriptions
		WHERE email = $1
	`

	var sub entity.EmailSubscription
	var unsubscribedAt sql.NullTime

	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&sub.ID, &sub.Email, &sub.Active, &sub.ConfirmedAt, &unsubscribedAt,
		&sub.CreatedAt, &sub.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	if unsubscribedAt.Valid {
		sub.UnsubscribedAt = &unsubscribedAt.Time
	}

	return &sub, nil
}
