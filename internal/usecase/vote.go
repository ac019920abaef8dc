package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scholaris/intake-api/internal/entity"
)

// CastVoteUseCase records one feature vote per (feature, email) and per
// (feature, IP). The dedup lookup guards the transition; the insert and
// the counter increment happen in one store transaction.
type CastVoteUseCase struct {
	Repo    entity.FeatureRepositoryInterface
	Limiter RateLimiter
	Logger  *zap.Logger
}

func NewCastVoteUseCase(repo entity.FeatureRepositoryInterface, limiter RateLimiter, logger *zap.Logger) *CastVoteUseCase {
	return &CastVoteUseCase{Repo: repo, Limiter: limiter, Logger: logger}
}

func (uc *CastVoteUseCase) Execute(ctx context.Context, input VoteInput, meta entity.ClientMeta) (*VoteOutput, error) {
	if errs := ValidateVoteInput(input); len(errs) > 0 {
		return nil, errs
	}

	allowed, err := uc.Limiter.Allow(ctx, meta.IP, PolicyVote)
	if err != nil {
		return nil, &TechnicalError{Code: "RATE_LIMIT_STORE_ERROR", Message: err.Error()}
	}
	if !allowed {
		return nil, &RateLimitError{Window: PolicyVote.Window}
	}

	email := entity.NormalizeEmail(input.Email)

	if _, err := uc.Repo.FindByID(ctx, input.FeatureID); err != nil {
		if err == entity.ErrFeatureNotFound {
			return nil, ValidationErrors{{Field: "featureId", Message: "unknown feature"}}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	voted, err := uc.Repo.HasVoted(ctx, input.FeatureID, email, meta.IP)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if voted {
		return nil, &ConflictError{Message: "You have already voted for this feature."}
	}

	vote := &entity.FeatureVote{
		ID:        uuid.New().String(),
		FeatureID: input.FeatureID,
		Email:     email,
		ClientIP:  meta.IP,
		CreatedAt: time.Now(),
	}

	if err := uc.Repo.CreateVote(ctx, vote); err != nil {
		// Concurrent voters can slip past the lookup; the unique index
		// turns the race into the same conflict outcome.
		if err == entity.ErrAlreadyVoted {
			return nil, &ConflictError{Message: "You have already voted for this feature."}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to record vote: " + err.Error()}
	}

	uc.Logger.Info("vote recorded",
		zap.String("feature_id", input.FeatureID),
		zap.String("vote_id", vote.ID),
	)

	return &VoteOutput{FeatureID: input.FeatureID, Message: "Thanks for voting!"}, nil
}
