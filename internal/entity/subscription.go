package entity

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

// EmailSubscription is a newsletter signup. There is at most one record
// per normalized email; re-subscribing an inactive record reactivates it
// in place.
type EmailSubscription struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Active         bool       `json:"active"`
	ConfirmedAt    time.Time  `json:"confirmed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NormalizeEmail is the canonical form used as the subscription routing
// key: trimmed and lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SubscribeOutcome tells the caller what the upsert actually did.
type SubscribeOutcome string

const (
	SubscribeCreated     SubscribeOutcome = "created"
	SubscribeReactivated SubscribeOutcome = "reactivated"
	SubscribeNoop        SubscribeOutcome = "already_subscribed"
)

type SubscriptionRepositoryInterface interface {
	Subscribe(ctx context.Context, email string) (SubscribeOutcome, *EmailSubscription, error)
	Unsubscribe(ctx context.Context, email string) error
	FindByEmail(ctx context.Context, email string) (*EmailSubscription, error)
}
