package interview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devgrade/interview-agent/internal/app/stages"
	"github.com/devgrade/interview-agent/internal/app/tools"
	"github.com/devgrade/interview-agent/internal/domain"
	"github.com/devgrade/interview-agent/internal/observability"
)

// Service orchestrates interview sessions: it sequences the reasoning stages
// per turn, owns session persistence, and serializes turns per session.
type Service struct {
	store          domain.StateStore
	transcriptTool tools.Tool
	now            func() time.Time

	analysis     *stages.AnalysisStage
	planning     *stages.PlanningStage
	presentation *stages.PresentationStage
	report       *stages.ReportStage

	// At most one in-flight turn per session. Distinct sessions run
	// concurrently; the only shared resource is the text generator.
	mu    sync.Mutex
	locks map[domain.SessionID]*sync.Mutex
}

// NewService wires the default Analysis -> Planning -> Presentation pipeline
// around one text generator. transcriptTool may be nil; the transcript is
// then simply not archived.
func NewService(gen domain.TextGenerator, store domain.StateStore, transcriptTool tools.Tool) *Service {
	return &Service{
		store:          store,
		transcriptTool: transcriptTool,
		now:            time.Now,
		analysis:       stages.NewAnalysisStage(gen),
		planning:       stages.NewPlanningStage(gen),
		presentation:   stages.NewPresentationStage(gen),
		report:         stages.NewReportStage(gen),
		locks:          make(map[domain.SessionID]*sync.Mutex),
	}
}

type StartSessionInput struct {
	Profile domain.CandidateProfile
}

type StartSessionOutput struct {
	SessionID domain.SessionID
	Utterance string
}

// StartSession creates a fresh session and runs the bootstrap turn: no
// analysis, no turn record, no termination check. The returned utterance
// greets the candidate and asks the opening question.
func (s *Service) StartSession(ctx context.Context, in StartSessionInput) (*StartSessionOutput, error) {
	now := s.now()
	state := domain.NewInterviewState(domain.SessionID(uuid.NewString()), in.Profile, now)

	log := observability.LoggerFromContext(ctx).With(
		"session_id", state.ID,
		"candidate", in.Profile.Name,
	)
	log.Info("starting interview session", "stack", in.Profile.Stack, "level", in.Profile.Level)

	state.ResetScratchpad()

	assessment := s.analysis.Run(ctx, state, "")
	state.LastAssessment = &assessment

	result := s.planning.Run(ctx, state, assessment, "")
	state.LastPlan = &result.Plan

	utterance := s.presentation.Run(ctx, state, result.Plan, "")
	state.AppendExchange(domain.RoleInterviewer, utterance)

	state.Phase = domain.PhaseOngoing
	state.UpdatedAt = s.now()

	if err := s.store.Create(state); err != nil {
		log.Error("failed to persist new session", "error", err)
		return nil, fmt.Errorf("creating session: %w", err)
	}

	log.Info("session started")
	return &StartSessionOutput{SessionID: state.ID, Utterance: utterance}, nil
}

type SubmitAnswerInput struct {
	SessionID domain.SessionID
	Text      string
}

type SubmitAnswerOutput struct {
	Utterance      string
	ReasoningNotes []string
	Terminated     bool
	FinalReport    string
}

// SubmitAnswer runs one ongoing turn: analysis, planning, presentation, then
// the termination check. Backend trouble inside the stages never surfaces
// here; only an unknown or terminated session is an error.
func (s *Service) SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (*SubmitAnswerOutput, error) {
	lock := s.sessionLock(in.SessionID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.store.Get(in.SessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", in.SessionID, err)
	}
	if !state.Active() {
		return nil, fmt.Errorf("session %s: %w", in.SessionID, domain.ErrSessionTerminated)
	}

	log := observability.LoggerFromContext(ctx).With("session_id", state.ID)
	log.Info("turn started", "turn", len(state.TurnLog)+1)

	state.ResetScratchpad()
	state.AppendExchange(domain.RoleCandidate, in.Text)

	assessment := s.analysis.Run(ctx, state, in.Text)
	state.LastAssessment = &assessment

	result := s.planning.Run(ctx, state, assessment, in.Text)
	state.LastPlan = &result.Plan

	utterance := s.presentation.Run(ctx, state, result.Plan, in.Text)
	state.AppendExchange(domain.RoleInterviewer, utterance)

	out := &SubmitAnswerOutput{
		Utterance:      utterance,
		ReasoningNotes: append([]string(nil), state.Scratchpad...),
	}

	if !result.Continue {
		report := s.report.Run(ctx, state)
		state.Terminate(report)
		out.Terminated = true
		out.FinalReport = report
		s.archiveTranscript(ctx, state)
		log.Info("session terminated", "turns", len(state.TurnLog))
	}

	state.UpdatedAt = s.now()
	if err := s.store.Update(state); err != nil {
		log.Error("failed to persist session", "error", err)
		return nil, fmt.Errorf("updating session %s: %w", in.SessionID, err)
	}

	if out.Terminated {
		s.releaseLock(in.SessionID)
	}

	log.Info("turn completed", "terminated", out.Terminated)
	return out, nil
}

// GetSession returns the persisted state snapshot for read-only callers.
func (s *Service) GetSession(ctx context.Context, id domain.SessionID) (*domain.InterviewState, error) {
	return s.store.Get(id)
}

func (s *Service) archiveTranscript(ctx context.Context, state *domain.InterviewState) {
	if s.transcriptTool == nil {
		return
	}

	tctx := tools.ToolContext{SessionID: string(state.ID)}
	input := map[string]any{
		"participant_name": state.Profile.Name,
		"turns":            state.TurnLog,
		"final_report":     state.FinalReport,
	}

	if _, err := s.transcriptTool.Call(ctx, tctx, input); err != nil {
		// The session is already terminal; a lost archive is logged, not fatal.
		observability.LoggerFromContext(ctx).Error("transcript archive failed",
			"session_id", state.ID, "error", err)
	}
}

func (s *Service) sessionLock(id domain.SessionID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

func (s *Service) releaseLock(id domain.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, id)
}
