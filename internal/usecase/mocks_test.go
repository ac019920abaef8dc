package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/scholaris/intake-api/internal/entity"
)

// MockSubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, s *entity.Submission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubmissionRepository) FindByID(ctx context.Context, id string) (*entity.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) List(ctx context.Context, f entity.SubmissionFilter) ([]*entity.Submission, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) UpdateStatus(ctx context.Context, id, status, notes string) error {
	args := m.Called(ctx, id, status, notes)
	return args.Error(0)
}

// MockRateLimiter
type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(ctx context.Context, key string, policy RateLimitPolicy) (bool, error) {
	args := m.Called(ctx, key, policy)
	return args.Bool(0), args.Error(1)
}

// MockSubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Subscribe(ctx context.Context, email string) (entity.SubscribeOutcome, *entity.EmailSubscription, error) {
	args := m.Called(ctx, email)
	var sub *entity.EmailSubscription
	if args.Get(1) != nil {
		sub = args.Get(1).(*entity.EmailSubscription)
	}
	return args.Get(0).(entity.SubscribeOutcome), sub, args.Error(2)
}

func (m *MockSubscriptionRepository) Unsubscribe(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) FindByEmail(ctx context.Context, email string) (*entity.EmailSubscription, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.EmailSubscription), args.Error(1)
}

// MockFeatureRepository
type MockFeatureRepository struct {
	mock.Mock
}

func (m *MockFeatureRepository) Create(ctx context.Context, f *entity.Feature) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFeatureRepository) FindByID(ctx context.Context, id string) (*entity.Feature, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Feature), args.Error(1)
}

func (m *MockFeatureRepository) List(ctx context.Context) ([]*entity.Feature, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Feature), args.Error(1)
}

func (m *MockFeatureRepository) HasVoted(ctx context.Context, featureID, email, ip string) (bool, error) {
	args := m.Called(ctx, featureID, email, ip)
	return args.Bool(0), args.Error(1)
}

func (m *MockFeatureRepository) CreateVote(ctx context.Context, v *entity.FeatureVote) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
	name string
}

func (m *MockNotifier) Name() string {
	if m.name == "" {
		return "mock"
	}
	return m.name
}

func (m *MockNotifier) Notify(ctx context.Context, s *entity.Submission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
