package service

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/audit"
	qmodels "github.com/yvesls/ethicalsoft-compliance-sub000/internal/questionnaire/models"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/models"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
	dErrors "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain-errors"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/sentinel"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/requestcontext"
)

// ProvisionResult counts the documents a provisioning run touched.
type ProvisionResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// provisionTarget is one document to create if missing.
type provisionTarget struct {
	questionnaire    *qmodels.Questionnaire
	representativeID *id.RepresentativeID
	template         []models.AnswerEntry
}

// ProvisionForRepresentative creates the representative's document for every
// questionnaire of the project that lacks one.
func (s *Service) ProvisionForRepresentative(ctx context.Context, projectID id.ProjectID, representativeID id.RepresentativeID) (result ProvisionResult, err error) {
	ctx, finish := s.startOperation(ctx, "provision_for_representative", projectID, 0)
	defer func() { finish(err) }()

	if err := s.EnsureRepresentativeBelongsToProject(ctx, representativeID, projectID); err != nil {
		return ProvisionResult{}, err
	}
	questionnaires, err := s.catalog.ListByProject(ctx, projectID)
	if err != nil {
		return ProvisionResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list questionnaires")
	}

	targets := make([]provisionTarget, 0, len(questionnaires))
	for _, q := range questionnaires {
		template, err := s.templateFor(ctx, q.ID)
		if err != nil {
			return ProvisionResult{}, err
		}
		repID := representativeID
		targets = append(targets, provisionTarget{questionnaire: q, representativeID: &repID, template: template})
	}

	result, err = s.provision(ctx, projectID, targets)
	if err != nil {
		return ProvisionResult{}, err
	}
	s.metrics.AddProvisioned("representative", result.Created)
	s.logger.InfoContext(ctx, "responses provisioned for representative",
		"project_id", projectID,
		"representative_id", representativeID,
		"created", result.Created,
		"skipped", result.Skipped,
	)
	s.emitAudit(ctx, audit.Event{
		Action:           audit.ActionResponsesProvisioned,
		UserID:           requestcontext.Caller(ctx).UserID,
		ProjectID:        projectID,
		RepresentativeID: representativeID,
		Count:            result.Created,
	})
	return result, nil
}

// ProvisionForQuestionnaire creates one document per representative of the
// questionnaire's project, or the shared document when it has none.
func (s *Service) ProvisionForQuestionnaire(ctx context.Context, questionnaireID id.QuestionnaireID) (result ProvisionResult, err error) {
	ctx, finish := s.startOperation(ctx, "provision_for_questionnaire", 0, questionnaireID)
	defer func() { finish(err) }()

	questionnaire, err := s.catalog.FindQuestionnaire(ctx, questionnaireID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return ProvisionResult{}, models.ErrQuestionnaireNotFound
		}
		return ProvisionResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load questionnaire")
	}
	reps, err := s.projects.ListRepresentatives(ctx, questionnaire.ProjectID)
	if err != nil {
		return ProvisionResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list representatives")
	}
	template, err := s.templateFor(ctx, questionnaireID)
	if err != nil {
		return ProvisionResult{}, err
	}

	var targets []provisionTarget
	if len(reps) == 0 {
		targets = append(targets, provisionTarget{questionnaire: questionnaire, template: template})
	}
	for _, r := range reps {
		repID := r.ID
		targets = append(targets, provisionTarget{questionnaire: questionnaire, representativeID: &repID, template: template})
	}

	result, err = s.provision(ctx, questionnaire.ProjectID, targets)
	if err != nil {
		return ProvisionResult{}, err
	}
	s.metrics.AddProvisioned("questionnaire", result.Created)
	s.logger.InfoContext(ctx, "responses provisioned for questionnaire",
		"project_id", questionnaire.ProjectID,
		"questionnaire_id", questionnaireID,
		"representatives", len(reps),
		"created", result.Created,
		"skipped", result.Skipped,
	)
	s.emitAudit(ctx, audit.Event{
		Action:          audit.ActionResponsesProvisioned,
		UserID:          requestcontext.Caller(ctx).UserID,
		ProjectID:       questionnaire.ProjectID,
		QuestionnaireID: questionnaireID,
		Count:           result.Created,
	})
	return result, nil
}

func (s *Service) templateFor(ctx context.Context, questionnaireID id.QuestionnaireID) ([]models.AnswerEntry, error) {
	questions, err := s.catalog.OrderedQuestionsFor(ctx, questionnaireID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, models.ErrQuestionnaireNotFound
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load questions")
	}
	return models.BuildTemplate(questions), nil
}

// provision creates every missing target inside one transaction. Each new
// document gets its own copy of the template.
func (s *Service) provision(ctx context.Context, projectID id.ProjectID, targets []provisionTarget) (ProvisionResult, error) {
	now := requestcontext.Now(ctx)
	var result ProvisionResult
	err := s.tx.RunInTx(withTxProject(ctx, projectID), func(store Store) error {
		result = ProvisionResult{}
		for _, t := range targets {
			_, err := store.FindDocument(ctx, t.questionnaire.ProjectID, t.questionnaire.ID, t.representativeID)
			if err == nil {
				result.Skipped++
				continue
			}
			if !errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load response document")
			}
			doc := models.NewResponseDocument(
				t.questionnaire.ProjectID,
				t.questionnaire.ID,
				t.representativeID,
				t.questionnaire.StageID,
				t.template,
				now,
			)
			if err := store.Create(ctx, doc); err != nil {
				if errors.Is(err, sentinel.ErrAlreadyUsed) {
					result.Skipped++
					continue
				}
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create response document")
			}
			result.Created++
		}
		return nil
	})
	if err != nil {
		return ProvisionResult{}, err
	}
	return result, nil
}

// sortDocuments orders the shared document first, then by representative id.
func sortDocuments(docs []*models.ResponseDocument) {
	slices.SortFunc(docs, func(a, b *models.ResponseDocument) int {
		return cmp.Compare(representativeOrZero(a.RepresentativeID), representativeOrZero(b.RepresentativeID))
	})
}
