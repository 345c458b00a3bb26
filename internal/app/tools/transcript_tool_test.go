package tools_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devgrade/interview-agent/internal/adapters/storage/memory"
	"github.com/devgrade/interview-agent/internal/app/tools"
	"github.com/devgrade/interview-agent/internal/domain"
)

func TestTranscriptToolArchives(t *testing.T) {
	store := memory.NewArchiveStore()
	tool := tools.NewTranscriptTool(store)

	out, err := tool.Call(context.Background(),
		tools.ToolContext{SessionID: "s-1"},
		map[string]any{
			"participant_name": "Ivanov Ivan",
			"turns": []domain.TurnRecord{
				{TurnIndex: 1, QuestionText: "Q", AnswerText: "A"},
			},
			"final_report": "## Report",
		})
	require.NoError(t, err)
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, 1, out["turns_count"])

	transcripts := store.Transcripts()
	require.Len(t, transcripts, 1)
	assert.Equal(t, "Ivanov Ivan", transcripts[0].ParticipantName)
	assert.Equal(t, "## Report", transcripts[0].FinalReport)
}

func TestTranscriptToolRequiresSessionID(t *testing.T) {
	tool := tools.NewTranscriptTool(memory.NewArchiveStore())

	_, err := tool.Call(context.Background(), tools.ToolContext{}, map[string]any{})

	assert.Error(t, err)
}
