package model

// TestResult is what a learner sees after submitting a module test.
type TestResult struct {
	ModuleID string          `json:"moduleId"`
	Score    int             `json:"score"`
	Total    int             `json:"total"`
	Percent  int             `json:"percent"`
	Passed   bool            `json:"passed"`
	Results  map[string]bool `json:"results"`
	// Explanations and reference answers keyed by question id, revealed only
	// after grading.
	Feedback map[string]QuestionFeedback `json:"feedback"`
}

type QuestionFeedback struct {
	Correct       bool   `json:"correct"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation,omitempty"`
}

type PracticeResult struct {
	ModuleID  string                      `json:"moduleId"`
	SectionID string                      `json:"sectionId,omitempty"`
	Score     int                         `json:"score"`
	Total     int                         `json:"total"`
	Results   map[string]bool             `json:"results"`
	Feedback  map[string]QuestionFeedback `json:"feedback"`
}

// AnswerCheck is the outcome of the lenient reference comparison.
type AnswerCheck struct {
	Correct  bool   `json:"correct"`
	Feedback string `json:"feedback"`
	IsStub   bool   `json:"isStub"`
}
