package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/questionnaire/models"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/sentinel"
)

// InMemory is the question catalogue held in maps.
type InMemory struct {
	mu                sync.RWMutex
	questionnaires    map[id.QuestionnaireID]*models.Questionnaire
	questions         map[id.QuestionnaireID][]*models.Question
	nextQuestionnaire id.QuestionnaireID
	nextQuestion      id.QuestionID
}

func NewInMemory() *InMemory {
	return &InMemory{
		questionnaires: make(map[id.QuestionnaireID]*models.Questionnaire),
		questions:      make(map[id.QuestionnaireID][]*models.Question),
	}
}

func (s *InMemory) CreateQuestionnaire(_ context.Context, q *models.Questionnaire) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.ID == 0 {
		s.nextQuestionnaire++
		q.ID = s.nextQuestionnaire
	} else if _, exists := s.questionnaires[q.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.nextQuestionnaire = max(s.nextQuestionnaire, q.ID)
	s.questionnaires[q.ID] = cloneQuestionnaire(q)
	return nil
}

// AddQuestion appends q to its questionnaire's catalogue.
func (s *InMemory) AddQuestion(_ context.Context, q *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questionnaires[q.QuestionnaireID]; !ok {
		return sentinel.ErrNotFound
	}
	if q.ID == 0 {
		s.nextQuestion++
		q.ID = s.nextQuestion
	}
	s.nextQuestion = max(s.nextQuestion, q.ID)
	s.questions[q.QuestionnaireID] = append(s.questions[q.QuestionnaireID], cloneQuestion(q))
	return nil
}

func (s *InMemory) FindQuestionnaire(_ context.Context, questionnaireID id.QuestionnaireID) (*models.Questionnaire, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questionnaires[questionnaireID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneQuestionnaire(q), nil
}

// ListByProject returns the project's questionnaires ordered by id.
func (s *InMemory) ListByProject(_ context.Context, projectID id.ProjectID) ([]*models.Questionnaire, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Questionnaire
	for _, q := range s.questionnaires {
		if q.ProjectID == projectID {
			out = append(out, cloneQuestionnaire(q))
		}
	}
	slices.SortFunc(out, func(a, b *models.Questionnaire) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// OrderedQuestionsFor returns the catalogue sorted by position, then id.
func (s *InMemory) OrderedQuestionsFor(_ context.Context, questionnaireID id.QuestionnaireID) ([]models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.questionnaires[questionnaireID]; !ok {
		return nil, sentinel.ErrNotFound
	}
	stored := s.questions[questionnaireID]
	out := make([]models.Question, 0, len(stored))
	for _, q := range stored {
		out = append(out, *cloneQuestion(q))
	}
	slices.SortStableFunc(out, compareQuestions)
	return out, nil
}

func compareQuestions(a, b models.Question) int {
	if c := cmp.Compare(a.Position, b.Position); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func cloneQuestionnaire(q *models.Questionnaire) *models.Questionnaire {
	c := *q
	if q.StageID != nil {
		stage := *q.StageID
		c.StageID = &stage
	}
	return &c
}

func cloneQuestion(q *models.Question) *models.Question {
	c := *q
	c.StageIDs = slices.Clone(q.StageIDs)
	c.RoleIDs = slices.Clone(q.RoleIDs)
	return &c
}
