package memory

import (
	"sync"

	"github.com/devgrade/interview-agent/internal/domain"
)

// ArchiveStore collects transcripts in memory. Useful in tests to assert
// what was archived at termination.
type ArchiveStore struct {
	mu          sync.Mutex
	transcripts []*domain.Transcript
}

func NewArchiveStore() *ArchiveStore {
	return &ArchiveStore{}
}

func (s *ArchiveStore) SaveTranscript(transcript *domain.Transcript) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcripts = append(s.transcripts, transcript)
	return nil
}

// Transcripts returns everything archived so far.
func (s *ArchiveStore) Transcripts() []*domain.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*domain.Transcript(nil), s.transcripts...)
}
