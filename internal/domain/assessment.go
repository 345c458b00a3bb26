package domain

// Assessment is the analysis stage's structured judgment of the latest
// candidate answer: five independent behavioral flags plus a quality rating.
type Assessment struct {
	Thoughts          string  `json:"thoughts"`
	Fabrication       bool    `json:"fabrication"`
	SelfContradiction bool    `json:"self_contradiction"`
	OffTopicDrift     bool    `json:"off_topic_drift"`
	RoleReversal      bool    `json:"role_reversal"`
	ExitIntent        bool    `json:"exit_intent"`
	Quality           Quality `json:"answer_quality"`
}

// NeutralAssessment is the fixed substitute used when there is nothing to
// analyze or when the backend output could not be parsed. The pipeline must
// always have some assessment to act on.
func NeutralAssessment(thoughts string) Assessment {
	return Assessment{
		Thoughts: thoughts,
		Quality:  QualityMedium,
	}
}

// Flags returns the short names of the raised flags, for log lines and
// reasoning notes.
func (a Assessment) Flags() []string {
	var flags []string
	if a.Fabrication {
		flags = append(flags, "FABRICATION")
	}
	if a.SelfContradiction {
		flags = append(flags, "CONTRADICTION")
	}
	if a.OffTopicDrift {
		flags = append(flags, "OFF-TOPIC")
	}
	if a.RoleReversal {
		flags = append(flags, "ROLE_REVERSAL")
	}
	if a.ExitIntent {
		flags = append(flags, "STOP_REQUEST")
	}
	return flags
}

// DifficultyDelta adjusts question difficulty between turns. Only "same" is
// defined for now; the field is carried so widening it later does not change
// the wire shape.
type DifficultyDelta string

const DifficultySame DifficultyDelta = "same"

// Plan is the planning stage's directive for the upcoming interviewer
// utterance.
type Plan struct {
	Thoughts    string          `json:"thoughts"`
	Instruction string          `json:"instruction"`
	TopicLabel  string          `json:"topic_label"`
	Difficulty  DifficultyDelta `json:"difficulty_adjustment"`
}
