package handlers

import (
	"context"
	"sync"

	"github.com/scholaris/intake-api/internal/entity"
	"github.com/scholaris/intake-api/internal/usecase"
)

// stubSubmissionRepo keeps created submissions in memory.
type stubSubmissionRepo struct {
	mu      sync.Mutex
	created []*entity.Submission
	err     error
}

func (r *stubSubmissionRepo) Create(ctx context.Context, s *entity.Submission) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, s)
	return nil
}

func (r *stubSubmissionRepo) FindByID(ctx context.Context, id string) (*entity.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.created {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, entity.ErrSubmissionNotFound
}

func (r *stubSubmissionRepo) List(ctx context.Context, f entity.SubmissionFilter) ([]*entity.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.Submission(nil), r.created...), nil
}

func (r *stubSubmissionRepo) UpdateStatus(ctx context.Context, id, status, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.created {
		if s.ID == id {
			s.Status = status
			return nil
		}
	}
	return entity.ErrSubmissionNotFound
}

// stubLimiter admits or denies everything.
type stubLimiter struct {
	allow bool
	keys  []string
}

func (l *stubLimiter) Allow(ctx context.Context, key string, policy usecase.RateLimitPolicy) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, nil
}

// stubFeatureRepo serves a fixed feature set.
type stubFeatureRepo struct {
	features map[string]*entity.Feature
	voted    bool
	votes    []*entity.FeatureVote
}

func (r *stubFeatureRepo) Create(ctx context.Context, f *entity.Feature) error {
	if r.features == nil {
		r.features = map[string]*entity.Feature{}
	}
	r.features[f.ID] = f
	return nil
}

func (r *stubFeatureRepo) FindByID(ctx context.Context, id string) (*entity.Feature, error) {
	f, ok := r.features[id]
	if !ok {
		return nil, entity.ErrFeatureNotFound
	}
	return f, nil
}

func (r *stubFeatureRepo) List(ctx context.Context) ([]*entity.Feature, error) {
	out := make([]*entity.Feature, 0, len(r.features))
	for _, f := range r.features {
		out = append(out, f)
	}
	return out, nil
}

func (r *stubFeatureRepo) HasVoted(ctx context.Context, featureID, email, ip string) (bool, error) {
	return r.voted, nil
}

func (r *stubFeatureRepo) CreateVote(ctx context.Context, v *entity.FeatureVote) error {
	r.votes = append(r.votes, v)
	return nil
}
