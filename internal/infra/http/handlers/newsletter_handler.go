package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/scholaris/intake-api/internal/infra/http/middleware"
	"github.com/scholaris/intake-api/internal/usecase"
)

type NewsletterHandler struct {
	UseCase *usecase.SubscribeNewsletterUseCase
	Logger  *zap.Logger
}

func NewNewsletterHandler(uc *usecase.SubscribeNewsletterUseCase, logger *zap.Logger) *NewsletterHandler {
	return &NewsletterHandler{UseCase: uc, Logger: logger}
}

func (h *NewsletterHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubscribeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadJSON(w)
		return
	}

	out, err := h.UseCase.Subscribe(r.Context(), input, clientMeta(r))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	middleware.RecordSubmission("newsletter")
	writeSuccess(w, out.Message)
}

func (h *NewsletterHandler) HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubscribeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadJSON(w)
		return
	}

	out, err := h.UseCase.Unsubscribe(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeSuccess(w, out.Message)
}
