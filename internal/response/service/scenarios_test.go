package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/audit"
	pmodels "github.com/yvesls/ethicalsoft-compliance-sub000/internal/project/models"
	projectstore "github.com/yvesls/ethicalsoft-compliance-sub000/internal/project/store"
	qmodels "github.com/yvesls/ethicalsoft-compliance-sub000/internal/questionnaire/models"
	questionnairestore "github.com/yvesls/ethicalsoft-compliance-sub000/internal/questionnaire/store"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/models"
	responsestore "github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/store"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/sentinel"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/requestcontext"
)

// directory adapts the in-memory project store without importing the
// adapters package, which depends on this one.
type directory struct{ *projectstore.InMemory }

func (d directory) IsOwner(ctx context.Context, userID id.UserID, projectID id.ProjectID) (bool, error) {
	p, err := d.FindProject(ctx, projectID)
	if err != nil {
		return false, nil
	}
	return p.IsOwnedBy(userID), nil
}

func (d directory) RepresentativeOf(ctx context.Context, userID id.UserID, projectID id.ProjectID) (*pmodels.Representative, error) {
	return d.FindRepresentativeByUser(ctx, userID, projectID)
}

// =============================================================================
// Scenario Suite
// =============================================================================
// Exercises the service over the in-memory stores: all-or-nothing submission,
// pagination, status progression, shared documents and provisioning.

type ScenarioSuite struct {
	suite.Suite
	projects  *projectstore.InMemory
	catalog   *questionnairestore.InMemory
	responses *responsestore.InMemory
	audits    *audit.InMemoryStore
	service   *Service

	owner         id.UserID
	project       *pmodels.Project
	questionnaire *qmodels.Questionnaire
	now           time.Time
}

// auditSink records events synchronously.
type auditSink struct{ store *audit.InMemoryStore }

func (a auditSink) Emit(ctx context.Context, e audit.Event) error { return a.store.Append(ctx, e) }

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, new(ScenarioSuite))
}

func (s *ScenarioSuite) SetupTest() {
	ctx := context.Background()
	s.projects = projectstore.NewInMemory()
	s.catalog = questionnairestore.NewInMemory()
	s.responses = responsestore.NewInMemory()
	s.audits = audit.NewInMemoryStore()
	s.now = time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	s.owner = id.UserID(uuid.New())

	s.project = &pmodels.Project{Name: "lgpd", OwnerID: s.owner, CreatedAt: s.now}
	s.Require().NoError(s.projects.CreateProject(ctx, s.project))

	stage := id.StageID(3)
	s.questionnaire = &qmodels.Questionnaire{ProjectID: s.project.ID, StageID: &stage, Name: "data handling"}
	s.Require().NoError(s.catalog.CreateQuestionnaire(ctx, s.questionnaire))
	for i, text := range []string{"q1", "q2", "q3"} {
		s.Require().NoError(s.catalog.AddQuestion(ctx, &qmodels.Question{
			QuestionnaireID: s.questionnaire.ID,
			Position:        i,
			Text:            text,
			StageIDs:        []id.StageID{stage},
		}))
	}

	var err error
	s.service, err = New(s.responses, s.catalog, directory{s.projects}, WithAuditPublisher(auditSink{s.audits}))
	s.Require().NoError(err)
}

func (s *ScenarioSuite) adminCtx() context.Context {
	ctx := requestcontext.WithCaller(context.Background(), requestcontext.CallerInfo{UserID: id.UserID(uuid.New()), Admin: true})
	return requestcontext.WithTime(ctx, s.now)
}

func (s *ScenarioSuite) userCtx(userID id.UserID) context.Context {
	ctx := requestcontext.WithCaller(context.Background(), requestcontext.CallerInfo{UserID: userID})
	return requestcontext.WithTime(ctx, s.now)
}

func (s *ScenarioSuite) addRepresentative() (*pmodels.Representative, id.UserID) {
	userID := id.UserID(uuid.New())
	rep := &pmodels.Representative{ProjectID: s.project.ID, UserID: userID, JoinedAt: s.now}
	s.Require().NoError(s.projects.CreateRepresentative(context.Background(), rep))
	return rep, userID
}

func (s *ScenarioSuite) questionIDs() []id.QuestionID {
	questions, err := s.catalog.OrderedQuestionsFor(context.Background(), s.questionnaire.ID)
	s.Require().NoError(err)
	out := make([]id.QuestionID, len(questions))
	for i, q := range questions {
		out[i] = q.ID
	}
	return out
}

func yes(q id.QuestionID) models.SubmittedAnswer {
	return models.SubmittedAnswer{QuestionID: q, Response: models.AnswerTrue, Attachments: []models.Link{{URL: "https://evidence/" + q.String()}}}
}

func no(q id.QuestionID) models.SubmittedAnswer {
	return models.SubmittedAnswer{QuestionID: q, Response: models.AnswerFalse, Justification: &models.Link{Description: "out of scope"}}
}

func (s *ScenarioSuite) TestSharedDocumentForAdmin() {
	result, err := s.service.ProvisionForQuestionnaire(s.adminCtx(), s.questionnaire.ID)
	s.Require().NoError(err)
	s.Equal(ProvisionResult{Created: 1}, result)

	page, err := s.service.GetAnswerPage(s.adminCtx(), s.project.ID, s.questionnaire.ID, 0, 10)
	s.Require().NoError(err)
	s.Equal(1, page.TotalPages)
	s.Len(page.Answers, 3)
	s.False(page.Completed)

	ownerPage, err := s.service.GetAnswerPage(s.userCtx(s.owner), s.project.ID, s.questionnaire.ID, 0, 10)
	s.Require().NoError(err)
	s.Equal(page, ownerPage, "owner and admin read the same shared document")

	doc, err := s.responses.FindDocument(context.Background(), s.project.ID, s.questionnaire.ID, nil)
	s.Require().NoError(err)
	s.Require().NotNil(doc.StageID)
	s.Equal(id.StageID(3), *doc.StageID)
}

func (s *ScenarioSuite) TestPaginationThreeQuestionsSizeTwo() {
	_, err := s.service.ProvisionForQuestionnaire(s.adminCtx(), s.questionnaire.ID)
	s.Require().NoError(err)
	qs := s.questionIDs()

	first, err := s.service.GetAnswerPage(s.adminCtx(), s.project.ID, s.questionnaire.ID, 0, 2)
	s.Require().NoError(err)
	s.Equal(2, first.TotalPages)
	s.Require().Len(first.Answers, 2)
	s.Equal(qs[0], first.Answers[0].QuestionID)
	s.Equal(qs[1], first.Answers[1].QuestionID)

	second, err := s.service.GetAnswerPage(s.adminCtx(), s.project.ID, s.questionnaire.ID, 1, 2)
	s.Require().NoError(err)
	s.Require().Len(second.Answers, 1)
	s.Equal(qs[2], second.Answers[0].QuestionID)

	_, err = s.service.GetAnswerPage(s.adminCtx(), s.project.ID, s.questionnaire.ID, 2, 2)
	s.ErrorIs(err, models.ErrOutOfRangePage)

	_, err = s.service.SubmitAnswerPage(s.adminCtx(), s.project.ID, s.questionnaire.ID, 2, 2, []models.SubmittedAnswer{no(qs[0])})
	s.ErrorIs(err, models.ErrOutOfRangePage)
}

func (s *ScenarioSuite) TestSubmitReturnsTheSameAsAFreshRead() {
	rep, userID := s.addRepresentative()
	_, err := s.service.ProvisionForRepresentative(s.adminCtx(), s.project.ID, rep.ID)
	s.Require().NoError(err)
	qs := s.questionIDs()
	ctx := s.userCtx(userID)

	submitted, err := s.service.SubmitAnswerPage(ctx, s.project.ID, s.questionnaire.ID, 1, 2, []models.SubmittedAnswer{no(qs[2])})
	s.Require().NoError(err)
	read, err := s.service.GetAnswerPage(ctx, s.project.ID, s.questionnaire.ID, 1, 2)
	s.Require().NoError(err)
	s.Equal(read, submitted)
}

func (s *ScenarioSuite) TestStatusProgressionAndRegression() {
	_, err := s.service.ProvisionForQuestionnaire(s.adminCtx(), s.questionnaire.ID)
	s.Require().NoError(err)
	qs := s.questionIDs()
	ctx := s.adminCtx()

	_, err = s.service.SubmitAnswerPage(ctx, s.project.ID, s.questionnaire.ID, 0, 2, []models.SubmittedAnswer{yes(qs[0])})
	s.Require().NoError(err)
	doc, err := s.responses.FindDocument(ctx, s.project.ID, s.questionnaire.ID, nil)
	s.Require().NoError(err)
	s.Equal(models.StatusInProgress, doc.Status)
	s.Nil(doc.SubmissionDate)

	page, err := s.service.SubmitAnswerPage(ctx, s.project.ID, s.questionnaire.ID, 1, 2, []models.SubmittedAnswer{no(qs[1]), no(qs[2])})
	s.Require().NoError(err)
	s.True(page.Completed)
	doc, err = s.responses.FindDocument(ctx, s.project.ID, s.questionnaire.ID, nil)
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, doc.Status)
	s.Require().NotNil(doc.SubmissionDate)
	s.Equal(s.now, *doc.SubmissionDate)

	_, err = s.service.SubmitAnswerPage(ctx, s.project.ID, s.questionnaire.ID, 0, 2,
		[]models.SubmittedAnswer{{QuestionID: qs[0], Response: models.AnswerUnset}})
	s.Require().NoError(err)
	doc, err = s.responses.FindDocument(ctx, s.project.ID, s.questionnaire.ID, nil)
	s.Require().NoError(err)
	s.Equal(models.StatusInProgress, doc.Status, "clearing an answer moves the status back")
	s.Nil(doc.SubmissionDate)
}

func (s *ScenarioSuite) TestSubmissionIsAllOrNothing() {
	_, err := s.service.ProvisionForQuestionnaire(s.adminCtx(), s.questionnaire.ID)
	s.Require().NoError(err)
	qs := s.questionIDs()
	before, err := s.responses.FindDocument(context.Background(), s.project.ID, s.questionnaire.ID, nil)
	s.Require().NoError(err)

	_, err = s.service.SubmitAnswerPage(s.adminCtx(), s.project.ID, s.questionnaire.ID, 0, 2, []models.SubmittedAnswer{
		yes(qs[0]),
		{QuestionID: qs[1], Response: models.AnswerFalse},
	})
	s.ErrorIs(err, models.ErrJustificationRequired)

	_, err = s.service.SubmitAnswerPage(s.adminCtx(), s.project.ID, s.questionnaire.ID, 0, 2, []models.SubmittedAnswer{
		yes(qs[0]),
		yes(9999),
	})
	s.ErrorIs(err, models.ErrQuestionNotInQuestionnaire)

	after, err := s.responses.FindDocument(context.Background(), s.project.ID, s.questionnaire.ID, nil)
	s.Require().NoError(err)
	s.Equal(before, after)
	s.Empty(s.audits.All(), "rejected submissions are not audited")
}

func (s *ScenarioSuite) TestRepresentativesAnswerIndependently() {
	repA, userA := s.addRepresentative()
	repB, userB := s.addRepresentative()
	_, err := s.service.ProvisionForQuestionnaire(s.adminCtx(), s.questionnaire.ID)
	s.Require().NoError(err)
	qs := s.questionIDs()

	_, err = s.service.SubmitAnswerPage(s.userCtx(userA), s.project.ID, s.questionnaire.ID, 0, 3,
		[]models.SubmittedAnswer{yes(qs[0]), yes(qs[1]), yes(qs[2])})
	s.Require().NoError(err)

	pageB, err := s.service.GetAnswerPage(s.userCtx(userB), s.project.ID, s.questionnaire.ID, 0, 3)
	s.Require().NoError(err)
	for _, a := range pageB.Answers {
		s.False(a.Response.IsSet(), "representative B's document is untouched")
	}

	summaries, err := s.service.ListSummaries(s.userCtx(s.owner), s.project.ID, s.questionnaire.ID)
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)
	s.Equal(repA.ID, *summaries[0].RepresentativeID)
	s.Equal(models.StatusCompleted, summaries[0].Status)
	s.Equal(repB.ID, *summaries[1].RepresentativeID)
	s.Equal(models.StatusPending, summaries[1].Status)

	_, err = s.service.GetAnswerPage(s.userCtx(id.UserID(uuid.New())), s.project.ID, s.questionnaire.ID, 0, 3)
	s.ErrorIs(err, models.ErrRepresentativeNotFound)

	_, err = s.service.GetAnswerPage(s.adminCtx(), s.project.ID, s.questionnaire.ID, 0, 3)
	s.ErrorIs(err, models.ErrResponseNotFound, "no shared document once representatives exist")
}

func (s *ScenarioSuite) TestProvisionForRepresentativeIsIdempotent() {
	ctx := context.Background()
	second := &qmodels.Questionnaire{ProjectID: s.project.ID, Name: "security"}
	s.Require().NoError(s.catalog.CreateQuestionnaire(ctx, second))
	rep, _ := s.addRepresentative()

	result, err := s.service.ProvisionForRepresentative(s.adminCtx(), s.project.ID, rep.ID)
	s.Require().NoError(err)
	s.Equal(ProvisionResult{Created: 2}, result)

	result, err = s.service.ProvisionForRepresentative(s.adminCtx(), s.project.ID, rep.ID)
	s.Require().NoError(err)
	s.Equal(ProvisionResult{Skipped: 2}, result)

	empty, err := s.service.GetAnswerPage(s.adminCtx(), s.project.ID, second.ID, 0, 5)
	s.ErrorIs(err, models.ErrResponseNotFound)
	s.Nil(empty)

	repID := rep.ID
	doc, err := s.responses.FindDocument(ctx, s.project.ID, second.ID, &repID)
	s.Require().NoError(err)
	s.Empty(doc.Answers)
	s.Equal(models.StatusPending, doc.Status)

	_, err = s.service.ProvisionForRepresentative(s.adminCtx(), s.project.ID+1, rep.ID)
	s.ErrorIs(err, models.ErrRepresentativeNotFound)

	events := s.audits.All()
	s.Require().Len(events, 2)
	s.Equal(audit.ActionResponsesProvisioned, events[0].Action)
	s.Equal(2, events[0].Count)
}

func (s *ScenarioSuite) TestProvisionedDocumentsShareNothing() {
	s.addRepresentative()
	s.addRepresentative()
	_, err := s.service.ProvisionForQuestionnaire(s.adminCtx(), s.questionnaire.ID)
	s.Require().NoError(err)

	docs, err := s.responses.FindAllForProjectAndQuestionnaire(context.Background(), s.project.ID, s.questionnaire.ID)
	s.Require().NoError(err)
	s.Require().Len(docs, 2)
	docs[0].Answers[0].StageIDs[0] = 42
	s.NotEqual(id.StageID(42), docs[1].Answers[0].StageIDs[0])
}

func (s *ScenarioSuite) TestProvisionUnknownQuestionnaire() {
	_, err := s.service.ProvisionForQuestionnaire(s.adminCtx(), 404)
	s.ErrorIs(err, models.ErrQuestionnaireNotFound)
}

func (s *ScenarioSuite) TestConcurrentSubmissionsSerialise() {
	_, err := s.service.ProvisionForQuestionnaire(s.adminCtx(), s.questionnaire.ID)
	s.Require().NoError(err)
	qs := s.questionIDs()

	var wg sync.WaitGroup
	errs := make([]error, len(qs))
	for i, q := range qs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.service.SubmitAnswerPage(s.adminCtx(), s.project.ID, s.questionnaire.ID, 0, 3, []models.SubmittedAnswer{no(q)})
		}()
	}
	wg.Wait()
	for _, err := range errs {
		s.NoError(err)
	}

	doc, err := s.responses.FindDocument(context.Background(), s.project.ID, s.questionnaire.ID, nil)
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, doc.Status, "no submission was lost")
	s.Equal(int64(1+len(qs)), doc.Version)
}

func (s *ScenarioSuite) TestStoreConflictSurfacesAsConflict() {
	_, err := s.service.ProvisionForQuestionnaire(s.adminCtx(), s.questionnaire.ID)
	s.Require().NoError(err)
	doc, err := s.responses.FindDocument(context.Background(), s.project.ID, s.questionnaire.ID, nil)
	s.Require().NoError(err)
	doc.Version = 0
	s.ErrorIs(s.responses.Save(context.Background(), doc), sentinel.ErrConflict)
}
