package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/scholaris/intake-api/internal/entity"
	"github.com/scholaris/intake-api/internal/infra/http/middleware"
	"github.com/scholaris/intake-api/internal/usecase"
)

type VoteHandler struct {
	UseCase     *usecase.CastVoteUseCase
	FeatureRepo entity.FeatureRepositoryInterface
	Logger      *zap.Logger
}

func NewVoteHandler(uc *usecase.CastVoteUseCase, featureRepo entity.FeatureRepositoryInterface, logger *zap.Logger) *VoteHandler {
	return &VoteHandler{UseCase: uc, FeatureRepo: featureRepo, Logger: logger}
}

func (h *VoteHandler) HandleVote(w http.ResponseWriter, r *http.Request) {
	var input usecase.VoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadJSON(w)
		return
	}

	out, err := h.UseCase.Execute(r.Context(), input, clientMeta(r))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	middleware.RecordSubmission("vote")
	writeSuccess(w, out.Message)
}

// HandleListFeatures is public: the roadmap page shows features with
// their live vote counts.
func (h *VoteHandler) HandleListFeatures(w http.ResponseWriter, r *http.Request) {
	features, err := h.FeatureRepo.List(r.Context())
	if err != nil {
		h.Logger.Error("list features failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, failureResponse{
			Success: false,
			Message: "Something went wrong. Please try again later.",
		})
		return
	}
	if features == nil {
		features = []*entity.Feature{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"features": features,
	})
}
