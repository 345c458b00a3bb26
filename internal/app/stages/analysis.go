package stages

import (
	"context"
	"fmt"
	"strings"

	"github.com/devgrade/interview-agent/internal/domain"
	"github.com/devgrade/interview-agent/internal/observability"
)

// AnalysisStage inspects the latest candidate answer and produces a
// behavioral assessment. It never fails: backend or parse trouble is
// absorbed into a neutral assessment so the pipeline always has something
// to act on.
type AnalysisStage struct {
	gen domain.TextGenerator
}

func NewAnalysisStage(gen domain.TextGenerator) *AnalysisStage {
	return &AnalysisStage{gen: gen}
}

func (s *AnalysisStage) Name() string {
	return "analysis"
}

// Run assesses answer in the context of the question it responds to.
// On the bootstrap turn and on blank input the backend is not called at all:
// there is nothing to analyze, and a backend call would only risk a spurious
// assessment.
func (s *AnalysisStage) Run(ctx context.Context, state *domain.InterviewState, answer string) domain.Assessment {
	log := observability.LoggerFromContext(ctx).With("stage", s.Name(), "session_id", state.ID)

	if state.Phase == domain.PhaseBootstrap {
		log.Info("bootstrap turn, skipping analysis")
		state.Note("[analysis]: (start of interview)")
		return domain.NeutralAssessment("Interview is starting. Waiting for the first question.")
	}

	if strings.TrimSpace(answer) == "" {
		log.Info("blank answer, skipping analysis")
		state.Note("[analysis]: blank input, nothing to assess")
		return domain.NeutralAssessment("The candidate sent a blank message.")
	}

	question := state.LastQuestion
	if question == "" {
		question = "Interview opening"
	}

	system := fmt.Sprintf(analysisSystemPrompt,
		state.Profile.Name, state.Profile.Level, state.Profile.Role, state.Profile.Stack)
	user := fmt.Sprintf("Context (interviewer's question): %s\nCandidate's answer: %s\n\nJSON:", question, answer)

	var assessment domain.Assessment

	raw, err := s.gen.Generate(ctx, domain.GenerateRequest{System: system, User: user})
	switch {
	case err != nil:
		log.Error("analysis generation failed", "error", err)
		assessment = domain.NeutralAssessment("Analysis unavailable: the reasoning backend failed.")
	default:
		out := Decode[domain.Assessment](raw)
		if !out.OK {
			log.Warn("analysis output unparseable", "raw_prefix", prefix(out.Raw, 80))
			assessment = domain.NeutralAssessment("Analysis failed: the reply could not be parsed as an assessment.")
		} else {
			assessment = out.Value
			if assessment.Quality == "" {
				assessment.Quality = domain.QualityMedium
			}
		}
	}

	// Explicit stop phrases must end the interview even when the backend is
	// down, otherwise a dead backend traps the candidate in the session.
	if !assessment.ExitIntent && containsStopPhrase(answer) {
		assessment.ExitIntent = true
	}

	state.Note(noteLine(s.Name(), assessment))
	log.Info("analysis done", "quality", assessment.Quality, "flags", assessment.Flags())
	return assessment
}

var stopPhrases = []string{
	"let's stop",
	"lets stop",
	"let's finish",
	"end the interview",
	"stop the interview",
	"i want to stop",
	"that's enough for today",
}

func containsStopPhrase(answer string) bool {
	lower := strings.ToLower(answer)
	for _, p := range stopPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func noteLine(stage string, a domain.Assessment) string {
	line := fmt.Sprintf("[%s]: %s", stage, a.Thoughts)
	if flags := a.Flags(); len(flags) > 0 {
		line += fmt.Sprintf(" [FLAGS: %s]", strings.Join(flags, ", "))
	}
	return line
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
