package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/scholaris/intake-api/internal/entity"
)

// SubmitSubmissionUseCase runs the intake pipeline for the contact,
// sales and demo forms: validate, rate-limit, persist, fan out. The
// stages are strictly sequential; persistence success is the accept
// event and alone decides the caller's response.
type SubmitSubmissionUseCase struct {
	Repo      entity.SubmissionRepositoryInterface
	Limiter   RateLimiter
	Notifiers []Notifier
	Logger    *zap.Logger

	// OnNotifierFailure feeds the metrics counter; nil is fine.
	OnNotifierFailure func(name string)
}

func NewSubmitSubmissionUseCase(
	repo entity.SubmissionRepositoryInterface,
	limiter RateLimiter,
	notifiers []Notifier,
	logger *zap.Logger,
) *SubmitSubmissionUseCase {
	return &SubmitSubmissionUseCase{
		Repo:      repo,
		Limiter:   limiter,
		Notifiers: notifiers,
		Logger:    logger,
	}
}

func (uc *SubmitSubmissionUseCase) SubmitContact(ctx context.Context, input ContactInput, meta entity.ClientMeta) (*SubmitOutput, error) {
	if errs := ValidateContactInput(input); len(errs) > 0 {
		return nil, errs
	}

	s := entity.NewSubmission(entity.KindContact, input.FirstName+" "+input.LastName, input.Email, meta)
	s.Role = input.Role
	s.Message = CollapseSpaces(input.Message)
	if input.Source != "" {
		s.Source = input.Source
	}

	return uc.accept(ctx, s, PolicyContact, meta.IP,
		"Thanks for reaching out! We'll get back to you shortly.")
}

func (uc *SubmitSubmissionUseCase) SubmitSales(ctx context.Context, input SalesInput, meta entity.ClientMeta) (*SubmitOutput, error) {
	if errs := ValidateSalesInput(input); len(errs) > 0 {
		return nil, errs
	}

	s := entity.NewSubmission(entity.KindSales, input.Name, input.Email, meta)
	s.Institution = input.Institution
	s.TeamSize = input.TeamSize
	s.Message = CollapseSpaces(input.Message)
	if input.Source != "" {
		s.Source = input.Source
	}

	return uc.accept(ctx, s, PolicySales, meta.IP,
		"Thanks! Our sales team will reach out within one business day.")
}

func (uc *SubmitSubmissionUseCase) SubmitDemo(ctx context.Context, input DemoInput, meta entity.ClientMeta) (*SubmitOutput, error) {
	if errs := ValidateDemoInput(input); len(errs) > 0 {
		return nil, errs
	}

	s := entity.NewSubmission(entity.KindDemo, input.Name, input.Email, meta)
	s.Institution = input.Institution
	s.PreferredDate = input.PreferredDate
	if input.Source != "" {
		s.Source = input.Source
	}

	return uc.accept(ctx, s, PolicyDemo, meta.IP,
		"Demo request received! We'll confirm a time by email.")
}

// accept is the shared tail of the pipeline: rate-limit check, durable
// insert, then best-effort notifications.
func (uc *SubmitSubmissionUseCase) accept(ctx context.Context, s *entity.Submission, policy RateLimitPolicy, key, successMsg string) (*SubmitOutput, error) {
	allowed, err := uc.Limiter.Allow(ctx, key, policy)
	if err != nil {
		return nil, &TechnicalError{Code: "RATE_LIMIT_STORE_ERROR", Message: err.Error()}
	}
	if !allowed {
		return nil, &RateLimitError{Window: policy.Window}
	}

	if err := uc.Repo.Create(ctx, s); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to persist submission: " + err.Error()}
	}

	FanOut(ctx, uc.Logger, uc.Notifiers, s, uc.OnNotifierFailure)

	return &SubmitOutput{ID: s.ID, Message: successMsg}, nil
}
