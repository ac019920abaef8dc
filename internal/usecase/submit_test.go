package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/scholaris/intake-api/internal/entity"
)

func validContactInput() ContactInput {
	return ContactInput{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Role:      "Professor",
		Message:   "This is a test message that is longer than 10 characters.",
	}
}

func newSubmitUseCase(repo *MockSubmissionRepository, limiter *MockRateLimiter, notifiers ...Notifier) *SubmitSubmissionUseCase {
	return NewSubmitSubmissionUseCase(repo, limiter, notifiers, zap.NewNop())
}

func TestSubmitContact_Success(t *testing.T) {
	repo := new(MockSubmissionRepository)
	limiter := new(MockRateLimiter)
	notifier := new(MockNotifier)

	var stored *entity.Submission
	limiter.On("Allow", mock.Anything, "203.0.113.7", PolicyContact).Return(true, nil)
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*entity.Submission)
	}).Return(nil)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

	uc := newSubmitUseCase(repo, limiter, notifier)
	out, err := uc.SubmitContact(context.Background(), validContactInput(), entity.ClientMeta{
		IP:        "203.0.113.7",
		UserAgent: "test-agent",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Contains(t, out.Message, "Thanks")

	assert.Equal(t, entity.KindContact, stored.Kind)
	assert.Equal(t, "John Doe", stored.Name)
	assert.Equal(t, "john@example.com", stored.Email)
	assert.Equal(t, "Professor", stored.Role)
	assert.Equal(t, "203.0.113.7", stored.ClientIP)
	assert.Equal(t, entity.StatusNew, stored.Status)

	repo.AssertExpectations(t)
	limiter.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSubmitContact_ValidationShortCircuits(t *testing.T) {
	repo := new(MockSubmissionRepository)
	limiter := new(MockRateLimiter)

	uc := newSubmitUseCase(repo, limiter)
	input := validContactInput()
	input.Message = "Short"

	out, err := uc.SubmitContact(context.Background(), input, entity.ClientMeta{IP: "203.0.113.7"})

	assert.Nil(t, out)
	errs, ok := AsValidationErrors(err)
	assert.True(t, ok)
	assert.Equal(t, "message", errs[0].Field)

	// Nothing past validation runs.
	limiter.AssertNotCalled(t, "Allow", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitContact_RateLimited(t *testing.T) {
	repo := new(MockSubmissionRepository)
	limiter := new(MockRateLimiter)

	limiter.On("Allow", mock.Anything, "203.0.113.7", PolicyContact).Return(false, nil)

	uc := newSubmitUseCase(repo, limiter)
	out, err := uc.SubmitContact(context.Background(), validContactInput(), entity.ClientMeta{IP: "203.0.113.7"})

	assert.Nil(t, out)
	assert.True(t, IsRateLimitError(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitContact_PersistenceFailure(t *testing.T) {
	repo := new(MockSubmissionRepository)
	limiter := new(MockRateLimiter)
	notifier := new(MockNotifier)

	limiter.On("Allow", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	uc := newSubmitUseCase(repo, limiter, notifier)
	out, err := uc.SubmitContact(context.Background(), validContactInput(), entity.ClientMeta{IP: "203.0.113.7"})

	assert.Nil(t, out)
	assert.True(t, IsTechnicalError(err))

	// A submission that was never persisted must not be announced.
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestSubmitContact_NotifierFailureStillSucceeds(t *testing.T) {
	repo := new(MockSubmissionRepository)
	limiter := new(MockRateLimiter)
	failing := &MockNotifier{name: "slack_webhook"}
	healthy := &MockNotifier{name: "email_internal"}

	limiter.On("Allow", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	failing.On("Notify", mock.Anything, mock.Anything).Return(errors.New("webhook 500"))
	healthy.On("Notify", mock.Anything, mock.Anything).Return(nil)

	var failedNames []string
	uc := newSubmitUseCase(repo, limiter, failing, healthy)
	uc.OnNotifierFailure = func(name string) { failedNames = append(failedNames, name) }

	out, err := uc.SubmitContact(context.Background(), validContactInput(), entity.ClientMeta{IP: "203.0.113.7"})

	assert.NoError(t, err)
	assert.NotNil(t, out)
	assert.Equal(t, []string{"slack_webhook"}, failedNames)

	// A failure earlier in the fan-out never skips later notifiers.
	healthy.AssertCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestSubmitSales_Success(t *testing.T) {
	repo := new(MockSubmissionRepository)
	limiter := new(MockRateLimiter)

	var stored *entity.Submission
	limiter.On("Allow", mock.Anything, "198.51.100.4", PolicySales).Return(true, nil)
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*entity.Submission)
	}).Return(nil)

	uc := newSubmitUseCase(repo, limiter)
	out, err := uc.SubmitSales(context.Background(), SalesInput{
		Name:        "Jane Smith",
		Email:       "jane@university.edu",
		Institution: "State University",
		TeamSize:    "51-200",
	}, entity.ClientMeta{IP: "198.51.100.4"})

	assert.NoError(t, err)
	assert.NotNil(t, out)
	assert.Equal(t, entity.KindSales, stored.Kind)
	assert.Equal(t, "State University", stored.Institution)
	assert.Equal(t, "51-200", stored.TeamSize)
}

func TestSubmitDemo_MissingIPStoredAsUnknown(t *testing.T) {
	repo := new(MockSubmissionRepository)
	limiter := new(MockRateLimiter)

	var stored *entity.Submission
	limiter.On("Allow", mock.Anything, "", PolicyDemo).Return(true, nil)
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*entity.Submission)
	}).Return(nil)

	uc := newSubmitUseCase(repo, limiter)
	_, err := uc.SubmitDemo(context.Background(), DemoInput{
		Name:        "Jane Smith",
		Email:       "jane@university.edu",
		Institution: "State University",
	}, entity.ClientMeta{})

	assert.NoError(t, err)
	assert.Equal(t, "unknown", stored.ClientIP)
}
