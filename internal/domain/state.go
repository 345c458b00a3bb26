package domain

import "time"

// CandidateProfile is fixed at session start and immutable afterwards.
type CandidateProfile struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Level string `json:"level"`
	Stack string `json:"stack"`
}

// Utterance is one entry of the exchange log.
type Utterance struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// TurnRecord is an immutable snapshot of one completed ongoing turn: the
// question that was just answered, the answer, and the internal reasoning
// notes produced while handling it.
type TurnRecord struct {
	TurnIndex      int    `json:"turn_index"`
	QuestionText   string `json:"question_text"`
	AnswerText     string `json:"answer_text"`
	ReasoningNotes string `json:"reasoning_notes"`
}

// InterviewState is the single mutable record threaded through a turn.
// Each field has exactly one merge rule, implemented by the methods below:
//
//	ExchangeLog, TurnLog        append-only
//	TopicsCovered               set-insert (duplicates and sentinels ignored)
//	LastAssessment, LastPlan,
//	LastQuestion                overwrite
//	Scratchpad                  reset at turn start, append within the turn
//	Phase                       bootstrap -> ongoing -> terminated, one way
//
// The orchestrator owns the state exclusively for the session's lifetime;
// nothing else mutates it.
type InterviewState struct {
	ID      SessionID        `json:"id"`
	Profile CandidateProfile `json:"profile"`
	Phase   Phase            `json:"phase"`

	ExchangeLog   []Utterance  `json:"exchange_log"`
	TopicsCovered []string     `json:"topics_covered"`
	TurnLog       []TurnRecord `json:"turn_log"`

	LastAssessment *Assessment `json:"last_assessment,omitempty"`
	LastPlan       *Plan       `json:"last_plan,omitempty"`

	// Scratchpad lives for one turn only: reset at turn start, folded into
	// the turn record by the presentation stage, then discarded.
	Scratchpad []string `json:"-"`

	// LastQuestion is the most recently emitted interviewer utterance. The
	// next turn reads it as "the question being answered".
	LastQuestion string `json:"last_question"`

	FinalReport string `json:"final_report,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewInterviewState creates a fresh session in the bootstrap phase.
func NewInterviewState(id SessionID, profile CandidateProfile, now time.Time) *InterviewState {
	return &InterviewState{
		ID:        id,
		Profile:   profile,
		Phase:     PhaseBootstrap,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Active reports whether the session still accepts turns.
func (s *InterviewState) Active() bool {
	return s.Phase != PhaseTerminated
}

// AppendExchange appends one utterance to the exchange log.
func (s *InterviewState) AppendExchange(role Role, text string) {
	s.ExchangeLog = append(s.ExchangeLog, Utterance{Role: role, Text: text})
}

// CreditTopic inserts label into TopicsCovered. Sentinel labels and labels
// already present are ignored. Returns true if the label was credited.
func (s *InterviewState) CreditTopic(label string) bool {
	if label == "" || IsReservedTopic(label) {
		return false
	}
	for _, t := range s.TopicsCovered {
		if t == label {
			return false
		}
	}
	s.TopicsCovered = append(s.TopicsCovered, label)
	return true
}

// ResetScratchpad clears the per-turn notes. Called by the orchestrator at
// the start of every turn.
func (s *InterviewState) ResetScratchpad() {
	s.Scratchpad = nil
}

// Note appends one reasoning note to the current turn's scratchpad.
func (s *InterviewState) Note(text string) {
	s.Scratchpad = append(s.Scratchpad, text)
}

// RecordTurn appends an immutable turn record with the next 1-based index.
func (s *InterviewState) RecordTurn(question, answer, notes string) {
	s.TurnLog = append(s.TurnLog, TurnRecord{
		TurnIndex:      len(s.TurnLog) + 1,
		QuestionText:   question,
		AnswerText:     answer,
		ReasoningNotes: notes,
	})
}

// Terminate moves the session to the terminated phase and stores the final
// report. A terminated session never becomes active again.
func (s *InterviewState) Terminate(report string) {
	s.Phase = PhaseTerminated
	s.FinalReport = report
}
