package service

import (
	"context"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/audit"
	pmodels "github.com/yvesls/ethicalsoft-compliance-sub000/internal/project/models"
	qmodels "github.com/yvesls/ethicalsoft-compliance-sub000/internal/questionnaire/models"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/models"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// Store persists response documents. Implementations return sentinel errors:
// ErrNotFound for a missing document, ErrAlreadyUsed when Create hits an
// existing key and ErrConflict when Save sees a stale Version.
type Store interface {
	FindDocument(ctx context.Context, projectID id.ProjectID, questionnaireID id.QuestionnaireID, representativeID *id.RepresentativeID) (*models.ResponseDocument, error)
	Create(ctx context.Context, doc *models.ResponseDocument) error
	Save(ctx context.Context, doc *models.ResponseDocument) error
	FindAllForProjectAndQuestionnaire(ctx context.Context, projectID id.ProjectID, questionnaireID id.QuestionnaireID) ([]*models.ResponseDocument, error)
}

// QuestionCatalog is the read side of the questionnaire module.
type QuestionCatalog interface {
	FindQuestionnaire(ctx context.Context, questionnaireID id.QuestionnaireID) (*qmodels.Questionnaire, error)
	OrderedQuestionsFor(ctx context.Context, questionnaireID id.QuestionnaireID) ([]qmodels.Question, error)
	ListByProject(ctx context.Context, projectID id.ProjectID) ([]*qmodels.Questionnaire, error)
}

// ProjectDirectory answers ownership and membership questions.
// RepresentativeOf and FindRepresentative return sentinel.ErrNotFound when there is no match.
type ProjectDirectory interface {
	IsOwner(ctx context.Context, userID id.UserID, projectID id.ProjectID) (bool, error)
	RepresentativeOf(ctx context.Context, userID id.UserID, projectID id.ProjectID) (*pmodels.Representative, error)
	FindRepresentative(ctx context.Context, representativeID id.RepresentativeID) (*pmodels.Representative, error)
	ListRepresentatives(ctx context.Context, projectID id.ProjectID) ([]*pmodels.Representative, error)
}

// AuditPublisher receives audit events. Failures are logged, never returned to callers.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
