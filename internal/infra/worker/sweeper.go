package worker

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Sweeper periodically deletes rows that only exist to expire: rate
// limiter events outside every window, dead sessions, stale reset
// tokens. Nothing on the request path waits for it; a missed sweep just
// leaves garbage until the next tick.
type Sweeper struct {
	db           *sql.DB
	logger       *zap.Logger
	tickInterval time.Duration
	// rate-limit events older than this are outside every policy window
	eventRetention time.Duration
}

func NewSweeper(db *sql.DB, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		db:             db,
		logger:         logger,
		tickInterval:   time.Minute,
		eventRetention: 2 * time.Hour,
	}
}

func (w *Sweeper) Start(ctx context.Context) {
	w.logger.Info("sweeper started", zap.Duration("interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("sweeper stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Sweeper) sweep(ctx context.Context) {
	w.run(ctx, "rate_limit_events",
		`DELETE FROM rate_limit_events WHERE created_at < NOW() - $1::interval`,
		fmt.Sprintf("%d seconds", int(w.eventRetention.Seconds())))
	w.run(ctx, "sessions",
		`DELETE FROM sessions WHERE expires_at < NOW()`)
	w.run(ctx, "reset_tokens",
		`DELETE FROM reset_tokens WHERE expires_at < NOW()`)
}

func (w *Sweeper) run(ctx context.Context, table, query string, args ...any) {
	res, err := w.db.ExecContext(ctx, query, args...)
	if err != nil {
		w.logger.Error("sweep failed", zap.String("table", table), zap.Error(err))
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		w.logger.Info("swept expired rows", zap.String("table", table), zap.Int64("rows", n))
	}
}
