package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/audit"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/metrics"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/models"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
	dErrors "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain-errors"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/sentinel"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/requestcontext"
)

const tracerName = "github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/service"

// Service reads and writes paged answers of response documents and keeps
// their completion status current.
type Service struct {
	store          Store
	tx             ResponseStoreTx
	catalog        QuestionCatalog
	projects       ProjectDirectory
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTx replaces the in-memory sharded transaction runner.
func WithTx(tx ResponseStoreTx) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service.
func New(store Store, catalog QuestionCatalog, projects ProjectDirectory, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("response store is required")
	}
	if catalog == nil {
		return nil, errors.New("question catalog is required")
	}
	if projects == nil {
		return nil, errors.New("project directory is required")
	}
	s := &Service{store: store, catalog: catalog, projects: projects}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = NewShardedTx(store, DefaultTxTimeout)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s, nil
}

// GetAnswerPage returns one page of the caller's document for the questionnaire.
func (s *Service) GetAnswerPage(ctx context.Context, projectID id.ProjectID, questionnaireID id.QuestionnaireID, page, size int) (result *models.PageResult, err error) {
	ctx, finish := s.startOperation(ctx, "get_answer_page", projectID, questionnaireID)
	defer func() { finish(err) }()

	scope, err := s.ResolveScope(ctx, requestcontext.Caller(ctx), projectID)
	if err != nil {
		return nil, err
	}
	doc, err := loadDocument(ctx, s.store, projectID, questionnaireID, scope)
	if err != nil {
		return nil, err
	}
	return pageOf(doc, page, size)
}

// SubmitAnswerPage validates and applies answers to the caller's document.
// Either every answer is applied or the stored document is left unchanged.
func (s *Service) SubmitAnswerPage(
	ctx context.Context,
	projectID id.ProjectID,
	questionnaireID id.QuestionnaireID,
	page, size int,
	answers []models.SubmittedAnswer,
) (result *models.PageResult, err error) {
	ctx, finish := s.startOperation(ctx, "submit_answer_page", projectID, questionnaireID)
	defer func() {
		if err != nil {
			s.metrics.IncrementRejection(string(dErrors.CodeOf(err)))
		}
		finish(err)
	}()

	if err := s.ensureQuestionnaireInProject(ctx, projectID, questionnaireID); err != nil {
		return nil, err
	}

	caller := requestcontext.Caller(ctx)
	scope, err := s.ResolveScope(ctx, caller, projectID)
	if err != nil {
		return nil, err
	}
	if scope.Kind == ScopeRepresentative {
		if err := s.EnsureRepresentativeBelongsToProject(ctx, *scope.RepresentativeID, projectID); err != nil {
			return nil, err
		}
	}

	now := requestcontext.Now(ctx)
	var saved *models.ResponseDocument
	err = s.tx.RunInTx(withTxProject(ctx, projectID), func(store Store) error {
		doc, err := loadDocument(ctx, store, projectID, questionnaireID, scope)
		if err != nil {
			return err
		}
		if _, err := models.ResolvePage(page, size, len(doc.Answers)); err != nil {
			return err
		}
		updated, err := doc.ApplySubmission(answers, now)
		if err != nil {
			return err
		}
		if err := store.Save(ctx, updated); err != nil {
			switch {
			case errors.Is(err, sentinel.ErrConflict):
				return models.ErrConcurrentModification
			case errors.Is(err, sentinel.ErrNotFound):
				return models.ErrResponseNotFound
			default:
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save response document")
			}
		}
		saved = updated
		return nil
	})
	if err != nil {
		s.logger.InfoContext(ctx, "answer submission rejected",
			"project_id", projectID,
			"questionnaire_id", questionnaireID,
			"scope", scope.Kind.String(),
			"error", err,
		)
		return nil, err
	}

	s.metrics.IncrementSubmission(string(saved.Status))
	s.logger.InfoContext(ctx, "answers submitted",
		"project_id", projectID,
		"questionnaire_id", questionnaireID,
		"document_id", saved.ID,
		"scope", scope.Kind.String(),
		"status", saved.Status,
		"answers", len(answers),
		"version", saved.Version,
	)
	s.emitAudit(ctx, audit.Event{
		Action:           audit.ActionAnswersSubmitted,
		UserID:           caller.UserID,
		ProjectID:        projectID,
		QuestionnaireID:  questionnaireID,
		RepresentativeID: representativeOrZero(scope.RepresentativeID),
		Scope:            scope.Kind.String(),
		Status:           string(saved.Status),
		Count:            len(answers),
	})

	// the committed document is what a fresh read under the same scope returns
	return pageOf(saved, page, size)
}

// ListSummaries reports every document's completion for the questionnaire,
// shared document first then by representative id. Only admins and project
// owners may list.
func (s *Service) ListSummaries(ctx context.Context, projectID id.ProjectID, questionnaireID id.QuestionnaireID) (summaries []models.Summary, err error) {
	ctx, finish := s.startOperation(ctx, "list_summaries", projectID, questionnaireID)
	defer func() { finish(err) }()

	scope, err := s.ResolveScope(ctx, requestcontext.Caller(ctx), projectID)
	if err != nil {
		if errors.Is(err, models.ErrRepresentativeNotFound) {
			return nil, dErrors.New(dErrors.CodeForbidden, "only administrators and project owners may list responses")
		}
		return nil, err
	}
	if !scope.CanList() {
		return nil, dErrors.New(dErrors.CodeForbidden, "only administrators and project owners may list responses")
	}
	if err := s.ensureQuestionnaireInProject(ctx, projectID, questionnaireID); err != nil {
		return nil, err
	}

	docs, err := s.store.FindAllForProjectAndQuestionnaire(ctx, projectID, questionnaireID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list response documents")
	}
	sortDocuments(docs)
	summaries = make([]models.Summary, 0, len(docs))
	for _, d := range docs {
		summaries = append(summaries, d.Summary())
	}
	return summaries, nil
}

func (s *Service) ensureQuestionnaireInProject(ctx context.Context, projectID id.ProjectID, questionnaireID id.QuestionnaireID) error {
	questionnaire, err := s.catalog.FindQuestionnaire(ctx, questionnaireID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.ErrQuestionnaireNotInProject
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load questionnaire")
	}
	if !questionnaire.BelongsTo(projectID) {
		return models.ErrQuestionnaireNotInProject
	}
	return nil
}

func loadDocument(ctx context.Context, store Store, projectID id.ProjectID, questionnaireID id.QuestionnaireID, scope AccessScope) (*models.ResponseDocument, error) {
	doc, err := store.FindDocument(ctx, projectID, questionnaireID, scope.RepresentativeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, models.ErrResponseNotFound
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load response document")
	}
	return doc, nil
}

// pageOf slices doc's answers. A document without answers yields an empty
// page with zero total pages for any page and size.
func pageOf(doc *models.ResponseDocument, page, size int) (*models.PageResult, error) {
	if len(doc.Answers) == 0 {
		return &models.PageResult{
			Page:       page,
			Size:       size,
			TotalPages: 0,
			Completed:  false,
			Answers:    []models.AnswerView{},
		}, nil
	}
	slice, err := models.ResolvePage(page, size, len(doc.Answers))
	if err != nil {
		return nil, err
	}
	views := make([]models.AnswerView, 0, slice.Len())
	for _, e := range doc.Answers[slice.From:slice.To] {
		views = append(views, models.ToAnswerView(e))
	}
	return &models.PageResult{
		Page:       page,
		Size:       size,
		TotalPages: slice.TotalPages,
		Completed:  doc.Status == models.StatusCompleted,
		Answers:    views,
	}, nil
}

func (s *Service) startOperation(ctx context.Context, operation string, projectID id.ProjectID, questionnaireID id.QuestionnaireID) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "response."+operation, trace.WithAttributes(
		attribute.Int64("project.id", int64(projectID)),
		attribute.Int64("questionnaire.id", int64(questionnaireID)),
	))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		}
		span.End()
		s.metrics.ObserveOperation(operation, time.Since(start), err)
	}
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	event.ClientIP = requestcontext.ClientIP(ctx)
	event.UserAgent = requestcontext.UserAgent(ctx)
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"project_id", event.ProjectID,
			"error", err,
		)
	}
}

func representativeOrZero(v *id.RepresentativeID) id.RepresentativeID {
	if v == nil {
		return 0
	}
	return *v
}
