package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrFeatureNotFound = errors.New("feature not found")
	ErrAlreadyVoted    = errors.New("already voted for this feature")
)

// Feature is a roadmap item visitors can vote on. Votes is denormalized
// and incremented atomically at the store alongside each vote insert.
type Feature struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Votes       int       `json:"votes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewFeature(title, description string) *Feature {
	now := time.Now()
	return &Feature{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// FeatureVote links one voter to one feature. Email and ClientIP are both
// dedup keys: a second vote matching either one is refused.
type FeatureVote struct {
	ID        string    `json:"id"`
	FeatureID string    `json:"feature_id"`
	Email     string    `json:"email"`
	ClientIP  string    `json:"client_ip"`
	CreatedAt time.Time `json:"created_at"`
}

type FeatureRepositoryInterface interface {
	Create(ctx context.Context, f *Feature) error
	FindByID(ctx context.Context, id string) (*Feature, error)
	List(ctx context.Context) ([]*Feature, error)
	HasVoted(ctx context.Context, featureID, email, ip string) (bool, error)
	CreateVote(ctx context.Context, v *FeatureVote) error
}
