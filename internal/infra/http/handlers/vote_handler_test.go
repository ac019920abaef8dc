package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/scholaris/intake-api/internal/entity"
	"github.com/scholaris/intake-api/internal/usecase"
)

const voteFeatureID = "5f8f8b9e-7c3a-4e2b-9d1f-2a6c8e4b0d13"

func newVoteHandler(repo *stubFeatureRepo, limiter *stubLimiter) *VoteHandler {
	uc := usecase.NewCastVoteUseCase(repo, limiter, zap.NewNop())
	return NewVoteHandler(uc, repo, zap.NewNop())
}

func voteFeatureRepo() *stubFeatureRepo {
	return &stubFeatureRepo{features: map[string]*entity.Feature{
		voteFeatureID: {ID: voteFeatureID, Title: "Dark mode", Votes: 4},
	}}
}

func TestHandleVote_Success(t *testing.T) {
	repo := voteFeatureRepo()
	h := newVoteHandler(repo, &stubLimiter{allow: true})

	rec := postJSON(h.HandleVote, "/api/votes", map[string]string{
		"featureId": voteFeatureID,
		"email":     "voter@example.com",
	}, map[string]string{"X-Real-IP": "203.0.113.7"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, repo.votes, 1)
	assert.Equal(t, "voter@example.com", repo.votes[0].Email)
}

func TestHandleVote_InvalidFeatureID(t *testing.T) {
	h := newVoteHandler(voteFeatureRepo(), &stubLimiter{allow: true})

	rec := postJSON(h.HandleVote, "/api/votes", map[string]string{
		"featureId": "not-a-uuid",
		"email":     "voter@example.com",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorListResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "featureId", body.Errors[0].Field)
}

func TestHandleVote_DuplicateConflict(t *testing.T) {
	repo := voteFeatureRepo()
	repo.voted = true
	h := newVoteHandler(repo, &stubLimiter{allow: true})

	rec := postJSON(h.HandleVote, "/api/votes", map[string]string{
		"featureId": voteFeatureID,
		"email":     "voter@example.com",
	}, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var body failureResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "You have already voted for this feature.", body.Message)
	assert.Empty(t, repo.votes)
}

func TestHandleListFeatures(t *testing.T) {
	h := newVoteHandler(voteFeatureRepo(), &stubLimiter{allow: true})

	req := httptest.NewRequest(http.MethodGet, "/api/features", nil)
	rec := httptest.NewRecorder()
	h.HandleListFeatures(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success  bool              `json:"success"`
		Features []*entity.Feature `json:"features"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Features, 1)
	assert.Equal(t, 4, body.Features[0].Votes)
}

func TestHandleListFeatures_EmptyIsArray(t *testing.T) {
	h := newVoteHandler(&stubFeatureRepo{}, &stubLimiter{allow: true})

	req := httptest.NewRequest(http.MethodGet, "/api/features", nil)
	rec := httptest.NewRecorder()
	h.HandleListFeatures(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"features":[]`)
}
