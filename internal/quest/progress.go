package quest

import "time"

// Status is the lifecycle state of a quest instance.
type Status string

const (
	StatusAvailable    Status = "available"
	StatusNotAvailable Status = "not_available"
	StatusInProgress   Status = "in_progress"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
	StatusAbandoned    Status = "abandoned"
)

// Terminal reports whether no further transitions leave this status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusAbandoned
}

// ObjectiveProgress tracks one objective within one quest instance.
type ObjectiveProgress struct {
	Completed   bool       `json:"completed"`
	Value       float64    `json:"progress_value"` // 0.0 to 1.0
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Revealed mirrors the definition's Visible flag at start and is
	// flipped by RevealObjective. Matching ignores it; only status
	// rendering consults it.
	Revealed bool `json:"revealed"`

	// Data holds free-form progress state, such as accumulated research
	// points or per-item collection counts.
	Data map[string]string `json:"data,omitempty"`
}

// LearningMetrics are cosmetic learning-efficiency telemetry.
type LearningMetrics struct {
	CompletionEfficiency    float64 `json:"completion_efficiency"`
	FirstAttemptSuccessRate float64 `json:"first_attempt_success_rate"`
	HelpRequests            int     `json:"help_requests"`
	ApplicationAccuracy     float64 `json:"application_accuracy"`
}

// LearningProgress is cosmetic educational telemetry attached to a quest
// instance. It is never authoritative gameplay state.
type LearningProgress struct {
	MasteredConcepts    []string           `json:"mastered_concepts,omitempty"`
	DemonstratedMethods []string           `json:"demonstrated_methods,omitempty"`
	AssessmentScores    map[string]float64 `json:"assessment_scores,omitempty"`
	Metrics             LearningMetrics    `json:"metrics"`
}

// Progress is the mutable per-player record of one quest instance. One
// exists if and only if the player has started the quest at least once.
type Progress struct {
	QuestID     string     `json:"quest_id"`
	Status      Status     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Objectives   map[string]*ObjectiveProgress `json:"objectives"`
	ChosenBranch string                        `json:"chosen_branch,omitempty"`
	Choices      map[string]string             `json:"choices,omitempty"`

	// TimeInvested is elapsed quest time in minutes, fed by the caller.
	TimeInvested int `json:"time_invested"`

	Learning LearningProgress `json:"learning"`
}

func newObjectiveProgress(obj *Objective) *ObjectiveProgress {
	return &ObjectiveProgress{
		Revealed: obj.Visible,
		Data:     make(map[string]string),
	}
}

func newProgress(def *Definition) *Progress {
	objectives := make(map[string]*ObjectiveProgress, len(def.Objectives))
	for i := range def.Objectives {
		objectives[def.Objectives[i].ID] = newObjectiveProgress(&def.Objectives[i])
	}
	return &Progress{
		QuestID:    def.ID,
		Status:     StatusInProgress,
		StartedAt:  time.Now().UTC(),
		Objectives: objectives,
		Choices:    make(map[string]string),
		Learning: LearningProgress{
			AssessmentScores: make(map[string]float64),
		},
	}
}
