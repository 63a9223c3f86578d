package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/project/models"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/sentinel"
)

type representativeKey struct {
	userID    id.UserID
	projectID id.ProjectID
}

// InMemory keeps projects and representatives in maps. Ids are assigned on
// create when the caller leaves them zero.
type InMemory struct {
	mu              sync.RWMutex
	projects        map[id.ProjectID]*models.Project
	representatives map[id.RepresentativeID]*models.Representative
	byUser          map[representativeKey]id.RepresentativeID
	nextProject     id.ProjectID
	nextRep         id.RepresentativeID
}

func NewInMemory() *InMemory {
	return &InMemory{
		projects:        make(map[id.ProjectID]*models.Project),
		representatives: make(map[id.RepresentativeID]*models.Representative),
		byUser:          make(map[representativeKey]id.RepresentativeID),
	}
}

func (s *InMemory) CreateProject(_ context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		s.nextProject++
		p.ID = s.nextProject
	} else if _, exists := s.projects[p.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.nextProject = max(s.nextProject, p.ID)
	c := *p
	s.projects[p.ID] = &c
	return nil
}

func (s *InMemory) FindProject(_ context.Context, projectID id.ProjectID) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[projectID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *p
	return &c, nil
}

// CreateRepresentative rejects a second representative for the same user and project.
func (s *InMemory) CreateRepresentative(_ context.Context, r *models.Representative) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[r.ProjectID]; !ok {
		return sentinel.ErrNotFound
	}
	key := representativeKey{userID: r.UserID, projectID: r.ProjectID}
	if _, taken := s.byUser[key]; taken {
		return sentinel.ErrAlreadyUsed
	}
	if r.ID == 0 {
		s.nextRep++
		r.ID = s.nextRep
	} else if _, exists := s.representatives[r.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.nextRep = max(s.nextRep, r.ID)
	s.representatives[r.ID] = cloneRepresentative(r)
	s.byUser[key] = r.ID
	return nil
}

func (s *InMemory) FindRepresentative(_ context.Context, representativeID id.RepresentativeID) (*models.Representative, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.representatives[representativeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneRepresentative(r), nil
}

func (s *InMemory) FindRepresentativeByUser(_ context.Context, userID id.UserID, projectID id.ProjectID) (*models.Representative, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	repID, ok := s.byUser[representativeKey{userID: userID, projectID: projectID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneRepresentative(s.representatives[repID]), nil
}

// ListRepresentatives returns the project's representatives ordered by id.
func (s *InMemory) ListRepresentatives(_ context.Context, projectID id.ProjectID) ([]*models.Representative, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Representative
	for _, r := range s.representatives {
		if r.ProjectID == projectID {
			out = append(out, cloneRepresentative(r))
		}
	}
	slices.SortFunc(out, func(a, b *models.Representative) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func cloneRepresentative(r *models.Representative) *models.Representative {
	c := *r
	c.RoleIDs = slices.Clone(r.RoleIDs)
	return &c
}
