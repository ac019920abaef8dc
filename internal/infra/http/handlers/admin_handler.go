package handlers

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/scholaris/intake-api/internal/entity"
	"github.com/scholaris/intake-api/internal/usecase"
)

// SessionCookieName carries the admin session token.
const SessionCookieName = "scholaris_session"

type AdminHandler struct {
	Auth        *usecase.AdminAuthUseCase
	Submissions entity.SubmissionRepositoryInterface
	Features    entity.FeatureRepositoryInterface
	Logger      *zap.Logger
}

func NewAdminHandler(
	auth *usecase.AdminAuthUseCase,
	submissions entity.SubmissionRepositoryInterface,
	features entity.FeatureRepositoryInterface,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{Auth: auth, Submissions: submissions, Features: features, Logger: logger}
}

func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadJSON(w)
		return
	}

	session, err := h.Auth.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		if usecase.IsDomainError(err) {
			writeJSON(w, http.StatusUnauthorized, failureResponse{Success: false, Message: err.Error()})
			return
		}
		writeUseCaseError(w, h.Logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	writeSuccess(w, "Logged in.")
}

func (h *AdminHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.Auth.Logout(r.Context(), cookie.Value); err != nil {
			writeUseCaseError(w, h.Logger, err)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookieName, Value: "", Path: "/", MaxAge: -1})
	writeSuccess(w, "Logged out.")
}

func (h *AdminHandler) HandleResetRequest(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadJSON(w)
		return
	}

	if err := h.Auth.RequestPasswordReset(r.Context(), input.Email); err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	// Same answer whether or not the email exists.
	writeSuccess(w, "If that account exists, a reset link is on its way.")
}

func (h *AdminHandler) HandleResetConfirm(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadJSON(w)
		return
	}

	if err := h.Auth.ConfirmPasswordReset(r.Context(), input.Token, input.Password); err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeSuccess(w, "Password updated. You can log in now.")
}

func (h *AdminHandler) HandleListSubmissions(w http.ResponseWriter, r *http.Request) {
	filter := entity.SubmissionFilter{
		Kind:   entity.SubmissionKind(r.URL.Query().Get("type")),
		Status: r.URL.Query().Get("status"),
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		filter.Offset = offset
	}

	submissions, err := h.Submissions.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("list submissions failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, failureResponse{
			Success: false,
			Message: "Something went wrong. Please try again later.",
		})
		return
	}
	if submissions == nil {
		submissions = []*entity.Submission{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"submissions": submissions,
	})
}

func (h *AdminHandler) HandleGetSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	submission, err := h.Submissions.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrSubmissionNotFound {
			writeJSON(w, http.StatusNotFound, failureResponse{Success: false, Message: "Submission not found."})
			return
		}
		h.Logger.Error("get submission failed", zap.String("submission_id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, failureResponse{
			Success: false,
			Message: "Something went wrong. Please try again later.",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"submission": submission,
	})
}

func (h *AdminHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input struct {
		Status string `json:"status"`
		Notes  string `json:"notes,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadJSON(w)
		return
	}

	if !entity.ValidStatus(input.Status) {
		writeJSON(w, http.StatusBadRequest, errorListResponse{
			Success: false,
			Errors:  []usecase.ValidationError{{Field: "status", Message: "must be new, responded or closed"}},
		})
		return
	}

	if err := h.Submissions.UpdateStatus(r.Context(), id, input.Status, input.Notes); err != nil {
		if err == entity.ErrSubmissionNotFound {
			writeJSON(w, http.StatusNotFound, failureResponse{Success: false, Message: "Submission not found."})
			return
		}
		h.Logger.Error("update status failed", zap.String("submission_id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, failureResponse{
			Success: false,
			Message: "Something went wrong. Please try again later.",
		})
		return
	}

	writeSuccess(w, "Status updated.")
}

func (h *AdminHandler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	filter := entity.SubmissionFilter{
		Kind:   entity.SubmissionKind(r.URL.Query().Get("type")),
		Status: r.URL.Query().Get("status"),
		Limit:  500,
	}

	submissions, err := h.Submissions.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("export failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, failureResponse{
			Success: false,
			Message: "Something went wrong. Please try again later.",
		})
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="submissions.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{"id", "kind", "name", "email", "institution", "message", "status", "source", "created_at"})
	for _, s := range submissions {
		cw.Write([]string{
			s.ID, string(s.Kind), s.Name, s.Email, s.Institution, s.Message,
			s.Status, s.Source, s.CreatedAt.Format(time.RFC3339),
		})
	}
	cw.Flush()
}

func (h *AdminHandler) HandleCreateFeature(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadJSON(w)
		return
	}

	if input.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorListResponse{
			Success: false,
			Errors:  []usecase.ValidationError{{Field: "title", Message: "is required"}},
		})
		return
	}

	feature := entity.NewFeature(input.Title, input.Description)
	if err := h.Features.Create(r.Context(), feature); err != nil {
		h.Logger.Error("create feature failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, failureResponse{
			Success: false,
			Message: "Something went wrong. Please try again later.",
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"feature": feature,
	})
}
