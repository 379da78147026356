package model

type TrainerTaskKind string

const (
	TaskExercise TrainerTaskKind = "exercise"
	TaskQuiz     TrainerTaskKind = "quiz"
)

// TrainerTask is one item of the random trainer: either an open exercise or a
// practice section of a module. Exactly one of Exercise and Section is set.
type TrainerTask struct {
	Index       int               `json:"index"`
	Kind        TrainerTaskKind   `json:"kind"`
	ModuleID    string            `json:"moduleId"`
	ModuleLabel string            `json:"moduleLabel"`
	Exercise    *PracticeExercise `json:"exercise,omitempty"`
	Section     *Section          `json:"section,omitempty"`
}

// Redacted returns a copy safe to show before the learner answers.
func (t TrainerTask) Redacted() TrainerTask {
	if t.Section != nil {
		s := *t.Section
		s.Questions = s.Questions.Redacted()
		t.Section = &s
	}
	return t
}

type TrainerCheckResult struct {
	Task           TrainerTask       `json:"task"`
	Results        map[string]bool   `json:"results,omitempty"`
	Score          int               `json:"score"`
	Total          int               `json:"total"`
	CorrectAnswers map[string]string `json:"correctAnswers,omitempty"`
	Explanations   map[string]string `json:"explanations,omitempty"`
	SystemPrompt   string            `json:"systemPrompt"`
}
