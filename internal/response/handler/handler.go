package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/config"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/middleware"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/models"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/service"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
	dErrors "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain-errors"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/httputil"
	adminmw "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/middleware/admin"
	authmw "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/middleware/auth"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/response-mocks.go -package=mocks Service

// maxBodyBytes caps a submitted answer page.
const maxBodyBytes = 1 << 20

// Service defines the interface for response operations.
type Service interface {
	GetAnswerPage(ctx context.Context, projectID id.ProjectID, questionnaireID id.QuestionnaireID, page, size int) (*models.PageResult, error)
	SubmitAnswerPage(ctx context.Context, projectID id.ProjectID, questionnaireID id.QuestionnaireID, page, size int, answers []models.SubmittedAnswer) (*models.PageResult, error)
	ListSummaries(ctx context.Context, projectID id.ProjectID, questionnaireID id.QuestionnaireID) ([]models.Summary, error)
	ProvisionForRepresentative(ctx context.Context, projectID id.ProjectID, representativeID id.RepresentativeID) (service.ProvisionResult, error)
	ProvisionForQuestionnaire(ctx context.Context, questionnaireID id.QuestionnaireID) (service.ProvisionResult, error)
}

// SubmitRequest is the body of an answer page submission.
type SubmitRequest struct {
	Answers []models.SubmittedAnswer `json:"answers"`
}

// Handler handles response endpoints.
type Handler struct {
	logger       *slog.Logger
	responses    Service
	jwtValidator authmw.JWTValidator
	pagination   config.PaginationConfig
	timeout      time.Duration
}

// New creates a new response Handler.
func New(
	responses Service,
	logger *slog.Logger,
	jwtValidator authmw.JWTValidator,
	pagination config.PaginationConfig) *Handler {
	return &Handler{
		logger:       logger,
		responses:    responses,
		jwtValidator: jwtValidator,
		pagination:   pagination,
		timeout:      30 * time.Second,
	}
}

// Register registers the response routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(h.timeout))
		r.Use(middleware.ContentTypeJSON)
		r.Use(authmw.RequireAuth(h.jwtValidator, h.logger))

		r.Get("/projects/{projectID}/questionnaires/{questionnaireID}/answers", h.handleGetAnswerPage)
		r.Put("/projects/{projectID}/questionnaires/{questionnaireID}/answers", h.handleSubmitAnswerPage)
		r.Get("/projects/{projectID}/questionnaires/{questionnaireID}/summaries", h.handleListSummaries)

		r.Group(func(r chi.Router) {
			r.Use(adminmw.RequireAdmin(h.logger))
			r.Post("/projects/{projectID}/representatives/{representativeID}/provision", h.handleProvisionForRepresentative)
			r.Post("/questionnaires/{questionnaireID}/provision", h.handleProvisionForQuestionnaire)
		})
	})
}

func (h *Handler) handleGetAnswerPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID, questionnaireID, ok := h.documentParams(w, r)
	if !ok {
		return
	}
	page, size, err := h.pageParams(r)
	if err != nil {
		h.writeError(ctx, w, "invalid pagination", err)
		return
	}

	result, err := h.responses.GetAnswerPage(ctx, projectID, questionnaireID, page, size)
	if err != nil {
		h.writeError(ctx, w, "failed to get answer page", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleSubmitAnswerPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID, questionnaireID, ok := h.documentParams(w, r)
	if !ok {
		return
	}
	page, size, err := h.pageParams(r)
	if err != nil {
		h.writeError(ctx, w, "invalid pagination", err)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid submit request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Answers == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "answers is required"))
		return
	}

	result, err := h.responses.SubmitAnswerPage(ctx, projectID, questionnaireID, page, size, req.Answers)
	if err != nil {
		h.writeError(ctx, w, "failed to submit answer page", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListSummaries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID, questionnaireID, ok := h.documentParams(w, r)
	if !ok {
		return
	}

	summaries, err := h.responses.ListSummaries(ctx, projectID, questionnaireID)
	if err != nil {
		h.writeError(ctx, w, "failed to list summaries", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summaries)
}

func (h *Handler) handleProvisionForRepresentative(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID, err := id.ParseProjectID(chi.URLParam(r, "projectID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	representativeID, err := id.ParseRepresentativeID(chi.URLParam(r, "representativeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.responses.ProvisionForRepresentative(ctx, projectID, representativeID)
	if err != nil {
		h.writeError(ctx, w, "failed to provision responses for representative", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleProvisionForQuestionnaire(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	questionnaireID, err := id.ParseQuestionnaireID(chi.URLParam(r, "questionnaireID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.responses.ProvisionForQuestionnaire(ctx, questionnaireID)
	if err != nil {
		h.writeError(ctx, w, "failed to provision responses for questionnaire", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) documentParams(w http.ResponseWriter, r *http.Request) (id.ProjectID, id.QuestionnaireID, bool) {
	projectID, err := id.ParseProjectID(chi.URLParam(r, "projectID"))
	if err != nil {
		httputil.WriteError(w, err)
		return 0, 0, false
	}
	questionnaireID, err := id.ParseQuestionnaireID(chi.URLParam(r, "questionnaireID"))
	if err != nil {
		httputil.WriteError(w, err)
		return 0, 0, false
	}
	return projectID, questionnaireID, true
}

// pageParams reads page (default 0) and size (default from config). A size
// above the configured maximum is rejected.
func (h *Handler) pageParams(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	page := 0
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, dErrors.New(dErrors.CodeValidation, "page must be an integer")
		}
		page = n
	}
	size := h.pagination.DefaultSize
	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, dErrors.New(dErrors.CodeValidation, "size must be an integer")
		}
		size = n
	}
	if h.pagination.MaxSize > 0 && size > h.pagination.MaxSize {
		return 0, 0, dErrors.New(dErrors.CodeValidation, "size must not exceed "+strconv.Itoa(h.pagination.MaxSize))
	}
	return page, size, nil
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"code", dErrors.CodeOf(err),
		"error", err.Error(),
	}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
