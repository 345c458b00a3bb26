package stages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devgrade/interview-agent/internal/domain"
)

// genFunc adapts a function to domain.TextGenerator for tests.
type genFunc func(ctx context.Context, req domain.GenerateRequest) (string, error)

func (f genFunc) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	return f(ctx, req)
}

func failingGen() genFunc {
	return func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		return "", errors.New("backend down")
	}
}

func countingGen(t *testing.T, reply string, calls *int) genFunc {
	t.Helper()
	return func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		*calls++
		return reply, nil
	}
}

func testState(phase domain.Phase) *domain.InterviewState {
	s := domain.NewInterviewState("s-1", domain.CandidateProfile{
		Name:  "Ivanov Ivan",
		Role:  "Backend Developer",
		Level: "Middle",
		Stack: "SQL",
	}, time.Now())
	s.Phase = phase
	return s
}

func TestAnalysisBootstrapSkipsBackend(t *testing.T) {
	calls := 0
	stage := NewAnalysisStage(countingGen(t, "{}", &calls))
	state := testState(domain.PhaseBootstrap)

	a := stage.Run(context.Background(), state, "")

	assert.Zero(t, calls, "bootstrap turn must not invoke the generator")
	assert.Equal(t, domain.QualityMedium, a.Quality)
	assert.Empty(t, a.Flags())
	assert.Len(t, state.Scratchpad, 1)
}

func TestAnalysisBlankInputSkipsBackend(t *testing.T) {
	calls := 0
	stage := NewAnalysisStage(countingGen(t, "{}", &calls))
	state := testState(domain.PhaseOngoing)
	state.LastQuestion = "What is a JOIN?"

	a := stage.Run(context.Background(), state, "   \n\t ")

	assert.Zero(t, calls, "blank input must not invoke the generator")
	assert.Equal(t, domain.QualityMedium, a.Quality)
	assert.False(t, a.ExitIntent)
	assert.Empty(t, a.Flags())
}

func TestAnalysisParsesFlagsAndQuality(t *testing.T) {
	reply := "```json\n" + `{
		"thoughts": "Invented a library that does not exist.",
		"fabrication": true,
		"self_contradiction": false,
		"off_topic_drift": false,
		"role_reversal": false,
		"exit_intent": false,
		"answer_quality": "weak"
	}` + "\n```"

	stage := NewAnalysisStage(genFunc(func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		assert.Contains(t, req.System, "Ivanov Ivan")
		assert.Contains(t, req.User, "my answer")
		return reply, nil
	}))
	state := testState(domain.PhaseOngoing)
	state.LastQuestion = "Which ORM did you use?"

	a := stage.Run(context.Background(), state, "my answer")

	assert.True(t, a.Fabrication)
	assert.Equal(t, domain.QualityWeak, a.Quality)
	require.Len(t, state.Scratchpad, 1)
	assert.Contains(t, state.Scratchpad[0], "FABRICATION")
}

func TestAnalysisBackendFailureFallsBackNeutral(t *testing.T) {
	stage := NewAnalysisStage(failingGen())
	state := testState(domain.PhaseOngoing)

	a := stage.Run(context.Background(), state, "some answer")

	assert.Equal(t, domain.QualityMedium, a.Quality)
	assert.Empty(t, a.Flags())
	assert.Contains(t, a.Thoughts, "backend")
}

func TestAnalysisUnparseableFallsBackNeutral(t *testing.T) {
	stage := NewAnalysisStage(genFunc(func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		return "Sorry, I cannot produce JSON.", nil
	}))
	state := testState(domain.PhaseOngoing)

	a := stage.Run(context.Background(), state, "some answer")

	assert.Equal(t, domain.QualityMedium, a.Quality)
	assert.Empty(t, a.Flags())
	assert.Contains(t, a.Thoughts, "parsed")
}

func TestAnalysisStopPhraseOverridesDeadBackend(t *testing.T) {
	stage := NewAnalysisStage(failingGen())
	state := testState(domain.PhaseOngoing)

	a := stage.Run(context.Background(), state, "Okay, let's stop here.")

	assert.True(t, a.ExitIntent)
}

func TestAnalysisMissingQualityDefaultsToMedium(t *testing.T) {
	stage := NewAnalysisStage(genFunc(func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		return `{"thoughts": "fine answer"}`, nil
	}))
	state := testState(domain.PhaseOngoing)

	a := stage.Run(context.Background(), state, "an answer")

	assert.Equal(t, domain.QualityMedium, a.Quality)
}
