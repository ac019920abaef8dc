package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/scholaris/intake-api/internal/infra/http/middleware"
	"github.com/scholaris/intake-api/internal/usecase"
)

// IntakeHandler serves the three form endpoints that share the
// submit pipeline: contact, sales inquiry, demo request.
type IntakeHandler struct {
	UseCase *usecase.SubmitSubmissionUseCase
	Logger  *zap.Logger
}

func NewIntakeHandler(uc *usecase.SubmitSubmissionUseCase, logger *zap.Logger) *IntakeHandler {
	return &IntakeHandler{UseCase: uc, Logger: logger}
}

func (h *IntakeHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	var input usecase.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadJSON(w)
		return
	}

	out, err := h.UseCase.SubmitContact(r.Context(), input, clientMeta(r))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	middleware.RecordSubmission("contact")
	writeSuccess(w, out.Message)
}

func (h *IntakeHandler) HandleSales(w http.ResponseWriter, r *http.Request) {
	var input usecase.SalesInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadJSON(w)
		return
	}

	out, err := h.UseCase.SubmitSales(r.Context(), input, clientMeta(r))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	middleware.RecordSubmission("sales")
	writeSuccess(w, out.Message)
}

func (h *IntakeHandler) HandleDemo(w http.ResponseWriter, r *http.Request) {
	var input usecase.DemoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadJSON(w)
		return
	}

	out, err := h.UseCase.SubmitDemo(r.Context(), input, clientMeta(r))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	middleware.RecordSubmission("demo")
	writeSuccess(w, out.Message)
}
