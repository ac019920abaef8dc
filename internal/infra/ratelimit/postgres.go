// Package ratelimit implements a sliding-window rate limiter on top of
// Postgres, so every instance of the API observes the same counts and
// horizontal scaling does not multiply the effective limit.
package ratelimit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/scholaris/intake-api/internal/usecase"
)

type PostgresLimiter struct {
	DB *sql.DB
}

func NewPostgresLimiter(db *sql.DB) *PostgresLimiter {
	return &PostgresLimiter{DB: db}
}

// Allow records one admission attempt. The guarded INSERT counts events
// in the trailing window and only inserts while under the limit. This is
// a true sliding window: the count covers any trailing interval of the
// policy duration, so a burst at a bucket boundary cannot admit twice
// the limit.
//
// The check and the insert run under a per-key advisory lock in one
// transaction. Without it, two concurrent requests under READ COMMITTED
// each see the same committed count and both insert, overshooting the
// limit.
func (l *PostgresLimiter) Allow(ctx context.Context, key string, policy usecase.RateLimitPolicy) (bool, error) {
	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("rate limit tx: %w", err)
	}
	defer tx.Rollback()

	lockQuery := `SELECT pg_advisory_xact_lock(hashtext($1 || ':' || $2))`
	if _, err := tx.ExecContext(ctx, lockQuery, key, policy.Endpoint); err != nil {
		return false, fmt.Errorf("rate limit lock: %w", err)
	}

	query := `
		INSERT INTO rate_limit_events (identifier, endpoint, created_at)
		SELECT $1, $2, NOW()
		WHERE (
			SELECT COUNT(*) FROM rate_limit_events
			WHERE identifier = $1
			  AND endpoint = $2
			  AND created_at > NOW() - $3::interval
		) < $4
		RETURNING id
	`

	var id int64
	err = tx.QueryRowContext(ctx, query,
		key,
		policy.Endpoint,
		fmt.Sprintf("%d seconds", int(policy.Window.Seconds())),
		policy.Limit,
	).Scan(&id)

	allowed := true
	if err == sql.ErrNoRows {
		allowed = false
	} else if err != nil {
		return false, fmt.Errorf("rate limit check: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("rate limit commit: %w", err)
	}
	return allowed, nil
}

// Sweep removes events older than the longest window in use. Called by
// the background sweeper; admission never depends on it.
func (l *PostgresLimiter) Sweep(ctx context.Context, olderThan time.Duration) (int64, error) {
	query := `DELETE FROM rate_limit_events WHERE created_at < NOW() - $1::interval`
	res, err := l.DB.ExecContext(ctx, query, fmt.Sprintf("%d seconds", int(olderThan.Seconds())))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
