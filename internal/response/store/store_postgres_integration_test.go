//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	projectmodels "github.com/yvesls/ethicalsoft-compliance-sub000/internal/project/models"
	projectstore "github.com/yvesls/ethicalsoft-compliance-sub000/internal/project/store"
	qnmodels "github.com/yvesls/ethicalsoft-compliance-sub000/internal/questionnaire/models"
	qnstore "github.com/yvesls/ethicalsoft-compliance-sub000/internal/questionnaire/store"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/models"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/store"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/sentinel"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	driver   string
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	ctx      context.Context

	projectID       id.ProjectID
	questionnaireID id.QuestionnaireID
	repID           id.RepresentativeID
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	for _, driver := range []string{"pgx", "postgres"} {
		t.Run(driver, func(t *testing.T) {
			suite.Run(t, &PostgresStoreSuite{driver: driver})
		})
	}
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T(), s.driver)
	s.store = store.NewPostgres(s.postgres.DB)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	s.postgres.Truncate(s.T(), "response_documents", "questions", "questionnaires", "representatives", "projects")

	projects := projectstore.NewPostgres(s.postgres.DB)
	project := &projectmodels.Project{Name: "audit", OwnerID: id.UserID(uuid.New()), CreatedAt: time.Now()}
	s.Require().NoError(projects.CreateProject(s.ctx, project))
	rep := &projectmodels.Representative{ProjectID: project.ID, UserID: id.UserID(uuid.New()), JoinedAt: time.Now()}
	s.Require().NoError(projects.CreateRepresentative(s.ctx, rep))

	qn := &qnmodels.Questionnaire{ProjectID: project.ID, Name: "kickoff", CreatedAt: time.Now()}
	s.Require().NoError(qnstore.NewPostgres(s.postgres.DB).CreateQuestionnaire(s.ctx, qn))

	s.projectID = project.ID
	s.questionnaireID = qn.ID
	s.repID = rep.ID
}

func (s *PostgresStoreSuite) newDoc(rep *id.RepresentativeID) *models.ResponseDocument {
	template := []models.AnswerEntry{
		{QuestionID: 1, QuestionText: "Is there a privacy policy?", Attachments: []models.Link{}},
		{QuestionID: 2, QuestionText: "Is data encrypted at rest?", Attachments: []models.Link{}},
	}
	return models.NewResponseDocument(s.projectID, s.questionnaireID, rep, nil, template, time.Now().UTC())
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	doc := s.newDoc(&s.repID)
	s.Require().NoError(s.store.Create(s.ctx, doc))
	s.NotZero(doc.ID)
	s.Equal(int64(1), doc.Version)

	found, err := s.store.FindDocument(s.ctx, s.projectID, s.questionnaireID, &s.repID)
	s.Require().NoError(err)
	s.Equal(doc.ID, found.ID)
	s.Equal(models.StatusPending, found.Status)
	s.Require().Len(found.Answers, 2)
	s.Equal("Is data encrypted at rest?", found.Answers[1].QuestionText)
	s.Require().NotNil(found.RepresentativeID)
	s.Equal(s.repID, *found.RepresentativeID)
	s.Nil(found.StageID)
	s.Nil(found.SubmissionDate)

	_, err = s.store.FindDocument(s.ctx, s.projectID, s.questionnaireID, nil)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestCreateDuplicateKey() {
	s.Require().NoError(s.store.Create(s.ctx, s.newDoc(nil)))
	s.ErrorIs(s.store.Create(s.ctx, s.newDoc(nil)), sentinel.ErrAlreadyUsed)

	all, err := s.store.FindAllForProjectAndQuestionnaire(s.ctx, s.projectID, s.questionnaireID)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *PostgresStoreSuite) TestSaveComparesVersion() {
	s.Require().NoError(s.store.Create(s.ctx, s.newDoc(nil)))

	first, err := s.store.FindDocument(s.ctx, s.projectID, s.questionnaireID, nil)
	s.Require().NoError(err)
	second, err := s.store.FindDocument(s.ctx, s.projectID, s.questionnaireID, nil)
	s.Require().NoError(err)

	first.Answers[0].Response = models.AnswerTrue
	first.Status = models.CalculateStatus(first.Answers)
	s.Require().NoError(s.store.Save(s.ctx, first))
	s.Equal(int64(2), first.Version)

	second.Answers[1].Response = models.AnswerTrue
	s.ErrorIs(s.store.Save(s.ctx, second), sentinel.ErrConflict)

	stored, err := s.store.FindDocument(s.ctx, s.projectID, s.questionnaireID, nil)
	s.Require().NoError(err)
	s.Equal(models.StatusInProgress, stored.Status)
	s.Equal(models.AnswerTrue, stored.Answers[0].Response)
	s.Equal(models.AnswerUnset, stored.Answers[1].Response)
}

func (s *PostgresStoreSuite) TestSaveMissingDocument() {
	doc := s.newDoc(&s.repID)
	doc.Version = 1
	s.ErrorIs(s.store.Save(s.ctx, doc), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestFindAllOrdersSharedFirst() {
	s.Require().NoError(s.store.Create(s.ctx, s.newDoc(&s.repID)))
	s.Require().NoError(s.store.Create(s.ctx, s.newDoc(nil)))

	all, err := s.store.FindAllForProjectAndQuestionnaire(s.ctx, s.projectID, s.questionnaireID)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Nil(all[0].RepresentativeID)
	s.Require().NotNil(all[1].RepresentativeID)

	none, err := s.store.FindAllForProjectAndQuestionnaire(s.ctx, s.projectID, s.questionnaireID+100)
	s.Require().NoError(err)
	s.Empty(none)
}

// TestConcurrentCreate verifies the unique key admits exactly one document.
func (s *PostgresStoreSuite) TestConcurrentCreate() {
	const goroutines = 20
	var (
		wg        sync.WaitGroup
		created   atomic.Int32
		duplicate atomic.Int32
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch err := s.store.Create(s.ctx, s.newDoc(&s.repID)); {
			case err == nil:
				created.Add(1)
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				duplicate.Add(1)
			}
		}()
	}
	wg.Wait()
	s.Equal(int32(1), created.Load())
	s.Equal(int32(goroutines-1), duplicate.Load())
}

func (s *PostgresStoreSuite) TestTransactionRollbackDiscardsWrites() {
	sqlTx, err := s.postgres.DB.BeginTx(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().NoError(store.NewPostgresTx(sqlTx).Create(s.ctx, s.newDoc(nil)))
	s.Require().NoError(sqlTx.Rollback())

	_, err = s.store.FindDocument(s.ctx, s.projectID, s.questionnaireID, nil)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
