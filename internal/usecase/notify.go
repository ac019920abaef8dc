package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/scholaris/intake-api/internal/entity"
)

// NotifyTimeout bounds each downstream call so a slow provider cannot
// hold the response.
const NotifyTimeout = 5 * time.Second

// FanOut dispatches every notifier for an already-persisted submission.
// Each notifier runs independently: a failure or timeout is logged with
// the submission id and the notifier name, then the next one runs. The
// caller's response is decided before this is invoked and never changes.
func FanOut(ctx context.Context, logger *zap.Logger, notifiers []Notifier, s *entity.Submission, onFailure func(name string)) {
	for _, n := range notifiers {
		nctx, cancel := context.WithTimeout(ctx, NotifyTimeout)
		err := n.Notify(nctx, s)
		cancel()

		if err != nil {
			if onFailure != nil {
				onFailure(n.Name())
			}
			logger.Warn("notifier failed",
				zap.String("notifier", n.Name()),
				zap.String("submission_id", s.ID),
				zap.String("kind", string(s.Kind)),
				zap.Error(err),
			)
		}
	}
}
