// Package transcriptfile writes terminated-session transcripts as JSON
// documents on disk, one file per interview.
package transcriptfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/devgrade/interview-agent/internal/domain"
)

type Store struct {
	dir string
	now func() time.Time
}

func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// SaveTranscript writes the document as pretty-printed JSON. The file name
// combines the participant name and a timestamp so repeated interviews do
// not overwrite each other.
func (s *Store) SaveTranscript(transcript *domain.Transcript) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("transcriptfile: creating %s: %w", s.dir, err)
	}

	name := fmt.Sprintf("interview_%s_%s.json",
		sanitize(transcript.ParticipantName),
		s.now().Format("20060102-150405"))

	data, err := json.MarshalIndent(transcript, "", "  ")
	if err != nil {
		return fmt.Errorf("transcriptfile: encoding: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("transcriptfile: writing %s: %w", path, err)
	}
	return nil
}

func sanitize(name string) string {
	if name == "" {
		return "candidate"
	}
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
	clean = strings.Trim(clean, "_")
	if clean == "" {
		return "candidate"
	}
	return clean
}
