package stages

import (
	"context"
	"fmt"
	"strings"

	"github.com/devgrade/interview-agent/internal/domain"
	"github.com/devgrade/interview-agent/internal/observability"
)

// ReportStage produces the final free-text evaluation from the full
// exchange history. Even under backend failure the session must reach a
// terminal, reportable state, so a fixed notice substitutes for the report.
type ReportStage struct {
	gen domain.TextGenerator
}

func NewReportStage(gen domain.TextGenerator) *ReportStage {
	return &ReportStage{gen: gen}
}

func (s *ReportStage) Name() string {
	return "report"
}

func (s *ReportStage) Run(ctx context.Context, state *domain.InterviewState) string {
	log := observability.LoggerFromContext(ctx).With("stage", s.Name(), "session_id", state.ID)

	var transcript strings.Builder
	for _, u := range state.ExchangeLog {
		speaker := "Candidate"
		if u.Role == domain.RoleInterviewer {
			speaker = "Interviewer"
		}
		transcript.WriteString(speaker)
		transcript.WriteString(": ")
		transcript.WriteString(u.Text)
		transcript.WriteString("\n")
	}

	system := fmt.Sprintf(reportSystemPrompt,
		state.Profile.Name, state.Profile.Level, state.Profile.Stack, state.Profile.Level)
	user := fmt.Sprintf("Interview transcript:\n%s\nWrite the report.", transcript.String())

	report, err := s.gen.Generate(ctx, domain.GenerateRequest{System: system, User: user})
	if err != nil || strings.TrimSpace(report) == "" {
		log.Error("report generation failed, using notice", "error", err)
		return fallbackReport
	}

	log.Info("report generated", "length", len(report))
	return report
}
