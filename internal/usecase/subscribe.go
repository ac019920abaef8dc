package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/scholaris/intake-api/internal/entity"
)

// SubscribeNewsletterUseCase handles signup and unsubscribe. A signup
// when a record already exists is never a duplicate insert: active is a
// no-op success, inactive is reactivated in place.
type SubscribeNewsletterUseCase struct {
	Repo    entity.SubscriptionRepositoryInterface
	Limiter RateLimiter
	Logger  *zap.Logger
}

func NewSubscribeNewsletterUseCase(repo entity.SubscriptionRepositoryInterface, limiter RateLimiter, logger *zap.Logger) *SubscribeNewsletterUseCase {
	return &SubscribeNewsletterUseCase{Repo: repo, Limiter: limiter, Logger: logger}
}

func (uc *SubscribeNewsletterUseCase) Subscribe(ctx context.Context, input SubscribeInput, meta entity.ClientMeta) (*SubscribeOutput, error) {
	if errs := ValidateSubscribeInput(input); len(errs) > 0 {
		return nil, errs
	}

	email := entity.NormalizeEmail(input.Email)

	// Keyed by IP and email together so one mailbox can't be hammered
	// from many addresses, nor one address across many mailboxes.
	allowed, err := uc.Limiter.Allow(ctx, meta.IP+"|"+email, PolicyNewsletter)
	if err != nil {
		return nil, &TechnicalError{Code: "RATE_LIMIT_STORE_ERROR", Message: err.Error()}
	}
	if !allowed {
		return nil, &RateLimitError{Window: PolicyNewsletter.Window}
	}

	outcome, sub, err := uc.Repo.Subscribe(ctx, email)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to subscribe: " + err.Error()}
	}

	msg := "You're subscribed! Watch your inbox for the next issue."
	if outcome == entity.SubscribeNoop {
		msg = "You're already subscribed."
	}

	uc.Logger.Info("newsletter subscribe",
		zap.String("subscription_id", sub.ID),
		zap.String("outcome", string(outcome)),
	)

	return &SubscribeOutput{Outcome: outcome, Message: msg}, nil
}

func (uc *SubscribeNewsletterUseCase) Unsubscribe(ctx context.Context, input SubscribeInput) (*SubscribeOutput, error) {
	if errs := ValidateSubscribeInput(input); len(errs) > 0 {
		return nil, errs
	}

	email := entity.NormalizeEmail(input.Email)

	if err := uc.Repo.Unsubscribe(ctx, email); err != nil {
		if err == entity.ErrSubscriptionNotFound {
			return nil, &DomainError{Code: "NOT_SUBSCRIBED", Message: "This address is not subscribed."}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to unsubscribe: " + err.Error()}
	}

	return &SubscribeOutput{Message: "You've been unsubscribed."}, nil
}
