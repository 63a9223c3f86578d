package store

import (
	"context"
	"sync"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/models"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/sentinel"
)

// InMemory keeps response documents keyed by (project, questionnaire, representative).
// Every read and write copies the document so callers never share state with the store.
type InMemory struct {
	mu     sync.RWMutex
	docs   map[models.DocumentKey]*models.ResponseDocument
	nextID id.DocumentID
}

func NewInMemory() *InMemory {
	return &InMemory{docs: make(map[models.DocumentKey]*models.ResponseDocument)}
}

func (s *InMemory) FindDocument(_ context.Context, projectID id.ProjectID, questionnaireID id.QuestionnaireID, representativeID *id.RepresentativeID) (*models.ResponseDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[models.KeyFor(projectID, questionnaireID, representativeID)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return doc.Clone(), nil
}

// Create stores doc at version 1 and assigns its id.
func (s *InMemory) Create(_ context.Context, doc *models.ResponseDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := doc.Key()
	if _, exists := s.docs[key]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.nextID++
	doc.ID = s.nextID
	doc.Version = 1
	s.docs[key] = doc.Clone()
	return nil
}

// Save replaces the stored document when doc.Version matches and bumps the version.
func (s *InMemory) Save(_ context.Context, doc *models.ResponseDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := doc.Key()
	current, ok := s.docs[key]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Version != doc.Version {
		return sentinel.ErrConflict
	}
	doc.ID = current.ID
	doc.CreatedAt = current.CreatedAt
	doc.Version++
	s.docs[key] = doc.Clone()
	return nil
}

func (s *InMemory) FindAllForProjectAndQuestionnaire(_ context.Context, projectID id.ProjectID, questionnaireID id.QuestionnaireID) ([]*models.ResponseDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.ResponseDocument
	for key, doc := range s.docs {
		if key.ProjectID == projectID && key.QuestionnaireID == questionnaireID {
			out = append(out, doc.Clone())
		}
	}
	return out, nil
}
