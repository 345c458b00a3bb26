package stages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devgrade/interview-agent/internal/domain"
)

func TestReportBuildsTranscriptFromExchangeLog(t *testing.T) {
	var captured domain.GenerateRequest
	stage := NewReportStage(genFunc(func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		captured = req
		return "## Technical Review\nSolid SQL knowledge.", nil
	}))
	state := testState(domain.PhaseOngoing)
	state.AppendExchange(domain.RoleInterviewer, "What is a JOIN?")
	state.AppendExchange(domain.RoleCandidate, "It combines rows.")

	report := stage.Run(context.Background(), state)

	assert.Contains(t, captured.User, "Interviewer: What is a JOIN?")
	assert.Contains(t, captured.User, "Candidate: It combines rows.")
	assert.Contains(t, captured.System, "Ivanov Ivan")
	assert.Contains(t, report, "Technical Review")
}

func TestReportFallbackOnBackendFailure(t *testing.T) {
	stage := NewReportStage(failingGen())
	state := testState(domain.PhaseOngoing)

	report := stage.Run(context.Background(), state)

	assert.Equal(t, fallbackReport, report)
	assert.NotEmpty(t, report, "a terminated session must always have a report")
}

func TestReportFallbackOnEmptyReply(t *testing.T) {
	stage := NewReportStage(genFunc(func(ctx context.Context, req domain.GenerateRequest) (string, error) {
		return "", nil
	}))
	state := testState(domain.PhaseOngoing)

	report := stage.Run(context.Background(), state)

	assert.Equal(t, fallbackReport, report)
}
