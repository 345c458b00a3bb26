package memory

import (
	"fmt"
	"sync"

	"github.com/devgrade/interview-agent/internal/domain"
)

// StateStore keeps session snapshots in a mutex-guarded map. The default
// backend for tests and single-process runs.
type StateStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*domain.InterviewState
}

func NewStateStore() *StateStore {
	return &StateStore{
		sessions: make(map[domain.SessionID]*domain.InterviewState),
	}
}

func (s *StateStore) Create(state *domain.InterviewState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[state.ID]; exists {
		return fmt.Errorf("session %s: %w", state.ID, domain.ErrSessionExists)
	}

	s.sessions[state.ID] = state
	return nil
}

func (s *StateStore) Update(state *domain.InterviewState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[state.ID]; !exists {
		return fmt.Errorf("session %s: %w", state.ID, domain.ErrSessionNotFound)
	}

	s.sessions[state.ID] = state
	return nil
}

func (s *StateStore) Get(id domain.SessionID) (*domain.InterviewState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}

	return state, nil
}
