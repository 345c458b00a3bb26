package domain

import "context"

// GenerateRequest is a structured request to the reasoning backend.
type GenerateRequest struct {
	System      string
	User        string
	Temperature *float32
	MaxTokens   int
}

// TextGenerator is the external reasoning capability the stages depend on.
// It returns unstructured text or fails; callers that need structure parse
// the result defensively and absorb failures with fallback content.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// StateStore persists full session snapshots keyed by session id.
type StateStore interface {
	Create(state *InterviewState) error
	Get(id SessionID) (*InterviewState, error)
	Update(state *InterviewState) error
}

// Transcript is the document archived once a session terminates.
type Transcript struct {
	ParticipantName string       `json:"participant_name"`
	Turns           []TurnRecord `json:"turns"`
	FinalReport     string       `json:"final_report"`
}

// ArchiveStore persists terminated-session transcripts.
type ArchiveStore interface {
	SaveTranscript(transcript *Transcript) error
}
