package domain

import "time"

type SessionID string

type Role string

const (
	RoleCandidate   Role = "candidate"
	RoleInterviewer Role = "interviewer"
)

// Phase is the session lifecycle phase, stored explicitly in the state
// instead of being inferred from message counts at each call site.
type Phase string

const (
	PhaseBootstrap  Phase = "bootstrap"  // first invocation, nothing to analyze yet
	PhaseOngoing    Phase = "ongoing"    // regular question/answer turns
	PhaseTerminated Phase = "terminated" // report produced, no further turns accepted
)

// Quality is the three-level rating the analysis stage assigns to an answer.
type Quality string

const (
	QualityWeak   Quality = "weak"
	QualityMedium Quality = "medium" // neutral default
	QualityStrong Quality = "strong"
)

// Reserved topic labels. These carry control meaning and must never be
// credited as real covered topics.
const (
	TopicCurrent    = "Current Topic"
	TopicConclusion = "Conclusion" // terminal label, ends the session
	TopicGeneral    = "General"
	TopicEmergency  = "Emergency Topic" // fallback plan, nothing credited
)

// IsReservedTopic reports whether label is one of the sentinel labels.
func IsReservedTopic(label string) bool {
	switch label {
	case TopicCurrent, TopicConclusion, TopicGeneral, TopicEmergency:
		return true
	}
	return false
}

type Timestamp = time.Time
