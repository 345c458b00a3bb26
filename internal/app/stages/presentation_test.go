package stages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devgrade/interview-agent/internal/domain"
)

func TestPresentationBootstrapGreetsAndWritesNoRecord(t *testing.T) {
	var captured domain.GenerateRequest
	stage := NewPresentationStage(genFunc(func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		captured = req
		return "Hello! I'm Alice. Shall we start with SQL joins?", nil
	}))
	state := testState(domain.PhaseBootstrap)

	utterance := stage.Run(context.Background(), state, domain.Plan{Instruction: "Ask the opening SQL question."}, "")

	assert.Contains(t, captured.System, greetingRequired)
	assert.Empty(t, state.TurnLog, "bootstrap turn must not write a turn record")
	assert.Equal(t, utterance, state.LastQuestion)
}

func TestPresentationOngoingForbidsGreeting(t *testing.T) {
	var captured domain.GenerateRequest
	stage := NewPresentationStage(genFunc(func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		captured = req
		return "What isolation levels do you know?", nil
	}))
	state := testState(domain.PhaseOngoing)
	state.LastQuestion = "What is a transaction?"

	stage.Run(context.Background(), state, domain.Plan{Instruction: "Ask about isolation levels."}, "A unit of work")

	assert.Contains(t, captured.System, greetingForbidden)
}

func TestPresentationRecordsAnsweredQuestion(t *testing.T) {
	stage := NewPresentationStage(genFunc(func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		return "And how would you index that?", nil
	}))
	state := testState(domain.PhaseOngoing)
	state.LastQuestion = "What is a JOIN?"
	state.Note("[analysis]: solid answer")
	state.Note("[planning]: go deeper")

	stage.Run(context.Background(), state, domain.Plan{Instruction: "Go deeper."}, "It combines rows")

	require.Len(t, state.TurnLog, 1)
	record := state.TurnLog[0]
	assert.Equal(t, 1, record.TurnIndex)
	assert.Equal(t, "What is a JOIN?", record.QuestionText, "record must describe the question just answered")
	assert.Equal(t, "It combines rows", record.AnswerText)
	assert.Equal(t, "[analysis]: solid answer\n[planning]: go deeper", record.ReasoningNotes)
	assert.Equal(t, "And how would you index that?", state.LastQuestion)
}

func TestPresentationFillerOnBackendFailure(t *testing.T) {
	stage := NewPresentationStage(failingGen())
	state := testState(domain.PhaseOngoing)
	state.LastQuestion = "Q"

	utterance := stage.Run(context.Background(), state, domain.Plan{Instruction: "Ask something."}, "A")

	assert.Equal(t, fallbackUtterance, utterance)
	require.Len(t, state.TurnLog, 1, "the turn record is written even when phrasing falls back")
	assert.Equal(t, fallbackUtterance, state.LastQuestion)
}

func TestPresentationFillerOnEmptyReply(t *testing.T) {
	stage := NewPresentationStage(genFunc(func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		return "  \n ", nil
	}))
	state := testState(domain.PhaseOngoing)

	utterance := stage.Run(context.Background(), state, domain.Plan{Instruction: "Ask."}, "A")

	assert.Equal(t, fallbackUtterance, utterance)
}
