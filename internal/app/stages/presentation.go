package stages

import (
	"context"
	"fmt"
	"strings"

	"github.com/devgrade/interview-agent/internal/domain"
	"github.com/devgrade/interview-agent/internal/observability"
)

// PresentationStage phrases the plan's instruction as a single interviewer
// utterance and assembles the durable turn record.
type PresentationStage struct {
	gen domain.TextGenerator
}

func NewPresentationStage(gen domain.TextGenerator) *PresentationStage {
	return &PresentationStage{gen: gen}
}

func (s *PresentationStage) Name() string {
	return "presentation"
}

// Run generates the next interviewer utterance. On the bootstrap turn the
// utterance must open with a greeting and no turn record is written (there
// is no answered question yet). On ongoing turns greetings are forbidden and
// one turn record is appended describing the question that was just
// answered, using the previous utterance as the question text.
func (s *PresentationStage) Run(ctx context.Context, state *domain.InterviewState, plan domain.Plan, answer string) string {
	log := observability.LoggerFromContext(ctx).With("stage", s.Name(), "session_id", state.ID)

	greetingRule := greetingForbidden
	if state.Phase == domain.PhaseBootstrap {
		greetingRule = greetingRequired
	}

	system := fmt.Sprintf(presentationSystemPrompt, plan.Instruction, greetingRule)

	utterance, err := s.gen.Generate(ctx, domain.GenerateRequest{System: system, User: "Generate the reply."})
	if err != nil || strings.TrimSpace(utterance) == "" {
		log.Error("utterance generation failed, using filler", "error", err)
		utterance = fallbackUtterance
	}

	if state.Phase == domain.PhaseBootstrap {
		// First utterance of the session: nothing has been answered yet,
		// only remember the question for the next turn.
		state.LastQuestion = utterance
		log.Info("bootstrap utterance emitted")
		return utterance
	}

	// The record describes the Q that was just answered, not the Q about
	// to be asked.
	state.RecordTurn(state.LastQuestion, answer, strings.Join(state.Scratchpad, "\n"))
	state.LastQuestion = utterance

	log.Info("utterance emitted", "turn", len(state.TurnLog))
	return utterance
}
