package stages

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/devgrade/interview-agent/internal/domain"
	"github.com/devgrade/interview-agent/internal/observability"
)

// PlanningStage turns the assessment into an action plan for the next
// interviewer utterance and decides whether the session continues.
type PlanningStage struct {
	gen domain.TextGenerator
}

func NewPlanningStage(gen domain.TextGenerator) *PlanningStage {
	return &PlanningStage{gen: gen}
}

func (s *PlanningStage) Name() string {
	return "planning"
}

// PlanResult carries the plan plus the continuation decision. The decision
// is computed here, once, and carried forward rather than recomputed later.
type PlanResult struct {
	Plan     domain.Plan
	Continue bool
}

// Run produces the plan for the upcoming utterance. The directive is chosen
// by a fixed priority policy; the backend only phrases it out. A parse
// failure substitutes a fixed "move on" plan so the interview keeps making
// progress even when the backend is completely down.
func (s *PlanningStage) Run(ctx context.Context, state *domain.InterviewState, assessment domain.Assessment, answer string) PlanResult {
	log := observability.LoggerFromContext(ctx).With("stage", s.Name(), "session_id", state.ID)

	directive, closing := s.directive(state, assessment)

	plan := s.generatePlan(ctx, state, assessment, answer, directive)

	// The exit directive always terminates, whatever the backend produced.
	if closing {
		plan.Instruction = directive
		plan.TopicLabel = domain.TopicConclusion
	}

	if credited := state.CreditTopic(plan.TopicLabel); credited {
		log.Info("topic credited", "topic", plan.TopicLabel)
	}

	state.Note(fmt.Sprintf("[%s]: %s [difficulty: %s]", s.Name(), plan.Thoughts, plan.Difficulty))

	cont := !assessment.ExitIntent && plan.TopicLabel != domain.TopicConclusion
	log.Info("planning done", "topic", plan.TopicLabel, "continue", cont)

	return PlanResult{Plan: plan, Continue: cont}
}

// directive picks the instruction for the next utterance. Priority order,
// first match wins. The second return value marks the close-out branch.
func (s *PlanningStage) directive(state *domain.InterviewState, assessment domain.Assessment) (string, bool) {
	switch {
	case state.Phase == domain.PhaseBootstrap:
		return fmt.Sprintf("Ask the opening question for the declared stack (%s), suitable for a %s.",
			state.Profile.Stack, state.Profile.Level), false
	case assessment.ExitIntent:
		return "Close out the session: thank the candidate and say goodbye.", true
	case assessment.Fabrication:
		return "Challenge the fabricated claim and ask the candidate for a source.", false
	case assessment.Quality == domain.QualityStrong:
		return "The answer was strong. Advance to a new topic that has not been covered yet.", false
	default:
		return "Ask a clarifying follow-up question on the current topic.", false
	}
}

func (s *PlanningStage) generatePlan(ctx context.Context, state *domain.InterviewState, assessment domain.Assessment, answer, directive string) domain.Plan {
	log := observability.LoggerFromContext(ctx).With("stage", s.Name(), "session_id", state.ID)

	report, err := json.Marshal(assessment)
	if err != nil {
		report = []byte("analyst report unavailable")
	}
	if state.Phase == domain.PhaseBootstrap {
		// Opening turn: the candidate has only confirmed readiness, there
		// is nothing to assess yet.
		report = []byte("none, the interview is just starting")
	}

	lastQuestion := state.LastQuestion
	if lastQuestion == "" {
		lastQuestion = "Intro"
	}

	system := fmt.Sprintf(planningSystemPrompt,
		state.Profile.Stack, state.Profile.Level,
		lastQuestion,
		strings.Join(state.TopicsCovered, ", "),
		string(report),
		directive)
	user := fmt.Sprintf("Candidate's answer: %s", answer)
	if state.Phase == domain.PhaseBootstrap {
		user = "Produce the opening plan."
	}

	raw, err := s.gen.Generate(ctx, domain.GenerateRequest{System: system, User: user})
	if err != nil {
		log.Error("plan generation failed", "error", err)
		return fallbackPlan("Backend failed while planning. Forcing a topic change.")
	}

	out := Decode[domain.Plan](raw)
	if !out.OK {
		log.Warn("plan output unparseable", "raw_prefix", prefix(out.Raw, 80))
		return fallbackPlan("Plan could not be parsed. Forcing a topic change.")
	}

	plan := out.Value
	if plan.Difficulty == "" {
		plan.Difficulty = domain.DifficultySame
	}
	if plan.TopicLabel == "" {
		plan.TopicLabel = domain.TopicGeneral
	}
	return plan
}

// fallbackPlan is the fixed substitute guaranteeing progress under total
// backend failure. Its reserved label is never credited as a covered topic.
func fallbackPlan(thoughts string) domain.Plan {
	return domain.Plan{
		Thoughts:    thoughts,
		Instruction: fallbackPlanInstruction,
		TopicLabel:  domain.TopicEmergency,
		Difficulty:  domain.DifficultySame,
	}
}
