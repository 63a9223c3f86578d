package audit

import (
	"context"
	"slices"
	"sync"

	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// InMemoryStore keeps events in insertion order.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByProject returns the project's events oldest first.
func (s *InMemoryStore) ListByProject(_ context.Context, projectID id.ProjectID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

// All returns every stored event.
func (s *InMemoryStore) All() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events)
}

// MultiStore appends to every store in order and stops at the first failure.
type MultiStore []Store

func (m MultiStore) Append(ctx context.Context, event Event) error {
	for _, s := range m {
		if err := s.Append(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
