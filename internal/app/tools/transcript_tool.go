package tools

import (
	"context"
	"fmt"

	"github.com/devgrade/interview-agent/internal/domain"
)

// TranscriptTool archives the transcript of a terminated session through a
// domain.ArchiveStore.
type TranscriptTool struct {
	store domain.ArchiveStore
}

// NewTranscriptTool creates a new TranscriptTool.
// store can be a file-based or in-memory implementation.
func NewTranscriptTool(store domain.ArchiveStore) *TranscriptTool {
	return &TranscriptTool{store: store}
}

func (t *TranscriptTool) Name() string {
	return "transcript_archive"
}

// Call expects an input with this shape:
//
//	{
//	  "participant_name": "Ivanov Ivan",
//	  "turns":            []domain.TurnRecord{...},
//	  "final_report":     "## Technical Review ...",
//	}
//
// SessionID comes in ToolContext.
func (t *TranscriptTool) Call(
	ctx context.Context,
	tctx ToolContext,
	input map[string]any,
) (map[string]any, error) {

	if tctx.SessionID == "" {
		return nil, fmt.Errorf("transcript_archive: missing SessionID in ToolContext")
	}

	turns, _ := input["turns"].([]domain.TurnRecord)

	transcript := &domain.Transcript{
		ParticipantName: getString(input, "participant_name"),
		Turns:           turns,
		FinalReport:     getString(input, "final_report"),
	}

	if err := t.store.SaveTranscript(transcript); err != nil {
		return nil, fmt.Errorf("transcript_archive: save failed: %w", err)
	}

	return map[string]any{
		"status":      "ok",
		"session_id":  tctx.SessionID,
		"turns_count": len(transcript.Turns),
	}, nil
}

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
