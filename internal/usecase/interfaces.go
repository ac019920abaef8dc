package usecase

import (
	"context"
	"time"

	"github.com/scholaris/intake-api/internal/entity"
)

// RateLimiter answers whether one more operation is admitted for key
// under policy. Implementations must share state across instances.
type RateLimiter interface {
	Allow(ctx context.Context, key string, policy RateLimitPolicy) (bool, error)
}

// RateLimitPolicy is an endpoint-specific sliding-window quota.
type RateLimitPolicy struct {
	Endpoint string
	Limit    int
	Window   time.Duration
}

// Per-endpoint quotas. Newsletter is additionally keyed by email.
var (
	PolicyContact    = RateLimitPolicy{Endpoint: "contact", Limit: 3, Window: time.Hour}
	PolicySales      = RateLimitPolicy{Endpoint: "sales", Limit: 3, Window: time.Hour}
	PolicyDemo       = RateLimitPolicy{Endpoint: "demo", Limit: 2, Window: time.Hour}
	PolicyNewsletter = RateLimitPolicy{Endpoint: "newsletter", Limit: 2, Window: time.Hour}
	PolicyVote       = RateLimitPolicy{Endpoint: "vote", Limit: 10, Window: time.Hour}
)

// Notifier is one best-effort downstream dispatch. Failures are logged
// and never affect the request outcome.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, s *entity.Submission) error
}
