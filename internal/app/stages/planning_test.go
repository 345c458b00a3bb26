package stages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devgrade/interview-agent/internal/domain"
)

func planReply(topic string) string {
	return `{"thoughts": "t", "instruction": "ask about ` + topic + `", "topic_label": "` + topic + `", "difficulty_adjustment": "same"}`
}

func TestPlanningBootstrapIgnoresAssessment(t *testing.T) {
	var captured domain.GenerateRequest
	stage := NewPlanningStage(genFunc(func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		captured = req
		return planReply("SQL Basics"), nil
	}))
	state := testState(domain.PhaseBootstrap)

	// Even a hostile assessment must not influence the opening turn.
	assessment := domain.Assessment{Fabrication: true, Quality: domain.QualityStrong}
	result := stage.Run(context.Background(), state, assessment, "")

	assert.Contains(t, captured.System, "opening question")
	assert.NotContains(t, captured.System, "Challenge")
	assert.Equal(t, "SQL Basics", result.Plan.TopicLabel)
}

func TestPlanningExitIntentAlwaysTerminates(t *testing.T) {
	// Quality strong would normally advance to a new topic; exit wins.
	stage := NewPlanningStage(genFunc(func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		return planReply("Some Topic"), nil
	}))
	state := testState(domain.PhaseOngoing)

	assessment := domain.Assessment{ExitIntent: true, Quality: domain.QualityStrong}
	result := stage.Run(context.Background(), state, assessment, "let's stop")

	assert.Equal(t, domain.TopicConclusion, result.Plan.TopicLabel)
	assert.False(t, result.Continue)
	assert.Empty(t, state.TopicsCovered)
}

func TestPlanningExitIntentTerminatesUnderDeadBackend(t *testing.T) {
	stage := NewPlanningStage(failingGen())
	state := testState(domain.PhaseOngoing)

	result := stage.Run(context.Background(), state, domain.Assessment{ExitIntent: true}, "stop")

	assert.Equal(t, domain.TopicConclusion, result.Plan.TopicLabel)
	assert.False(t, result.Continue)
}

func TestPlanningFabricationDirective(t *testing.T) {
	var captured domain.GenerateRequest
	stage := NewPlanningStage(genFunc(func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		captured = req
		return planReply("Current Topic"), nil
	}))
	state := testState(domain.PhaseOngoing)

	stage.Run(context.Background(), state, domain.Assessment{Fabrication: true}, "I wrote that library myself")

	assert.Contains(t, captured.System, "fabricated claim")
}

func TestPlanningStrongAnswerAdvancesTopic(t *testing.T) {
	var captured domain.GenerateRequest
	stage := NewPlanningStage(genFunc(func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		captured = req
		return planReply("Window Functions"), nil
	}))
	state := testState(domain.PhaseOngoing)
	state.CreditTopic("SQL Joins")

	result := stage.Run(context.Background(), state, domain.Assessment{Quality: domain.QualityStrong}, "detailed answer")

	assert.Contains(t, captured.System, "new topic")
	assert.Contains(t, captured.System, "SQL Joins", "covered topics must be listed in the prompt")
	assert.True(t, result.Continue)
	assert.Equal(t, []string{"SQL Joins", "Window Functions"}, state.TopicsCovered)
}

func TestPlanningWeakAnswerStaysOnTopic(t *testing.T) {
	var captured domain.GenerateRequest
	stage := NewPlanningStage(genFunc(func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		captured = req
		return planReply("Current Topic"), nil
	}))
	state := testState(domain.PhaseOngoing)

	result := stage.Run(context.Background(), state, domain.Assessment{Quality: domain.QualityWeak}, "umm")

	assert.Contains(t, captured.System, "clarifying follow-up")
	assert.True(t, result.Continue)
	assert.Empty(t, state.TopicsCovered, "sentinel label must not be credited")
}

func TestPlanningFallbackOnUnparseableOutput(t *testing.T) {
	stage := NewPlanningStage(genFunc(func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		return "no json here", nil
	}))
	state := testState(domain.PhaseOngoing)

	result := stage.Run(context.Background(), state, domain.Assessment{Quality: domain.QualityMedium}, "answer")

	assert.Equal(t, domain.TopicEmergency, result.Plan.TopicLabel)
	assert.Equal(t, fallbackPlanInstruction, result.Plan.Instruction)
	assert.True(t, result.Continue, "fallback must keep the session going")
	assert.Empty(t, state.TopicsCovered)
}

func TestPlanningFallbackOnBackendFailure(t *testing.T) {
	stage := NewPlanningStage(failingGen())
	state := testState(domain.PhaseOngoing)

	result := stage.Run(context.Background(), state, domain.Assessment{}, "answer")

	assert.Equal(t, domain.TopicEmergency, result.Plan.TopicLabel)
	assert.True(t, result.Continue)
}

func TestPlanningConclusionFromModelStopsSession(t *testing.T) {
	stage := NewPlanningStage(genFunc(func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		return planReply(domain.TopicConclusion), nil
	}))
	state := testState(domain.PhaseOngoing)

	result := stage.Run(context.Background(), state, domain.Assessment{Quality: domain.QualityMedium}, "answer")

	assert.False(t, result.Continue)
	assert.Empty(t, state.TopicsCovered)
}

func TestPlanningAppendsScratchpadNote(t *testing.T) {
	stage := NewPlanningStage(genFunc(func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		return planReply("Indexes"), nil
	}))
	state := testState(domain.PhaseOngoing)
	state.Note("[analysis]: prior note")

	stage.Run(context.Background(), state, domain.Assessment{}, "answer")

	require.Len(t, state.Scratchpad, 2)
	assert.Contains(t, state.Scratchpad[1], "[planning]")
	assert.Contains(t, state.Scratchpad[1], "same")
}
