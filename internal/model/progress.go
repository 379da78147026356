package model

// ModuleProgress is the per-module learner record. LastAttemptResults is nil
// when no graded attempt is on record (never submitted, or reset).
type ModuleProgress struct {
	ModuleID           string            `json:"moduleId"`
	Completed          bool              `json:"completed"`
	BestScore          int               `json:"bestScore"`
	TotalQuestions     int               `json:"totalQuestions"`
	LastAttemptAnswers map[string]string `json:"lastAttemptAnswers"`
	LastAttemptResults map[string]bool   `json:"lastAttemptResults,omitempty"`
	PracticeCompleted  bool              `json:"practiceCompleted,omitempty"`
	PracticeAnswers    map[string]string `json:"practiceAnswers,omitempty"`
	PracticeResults    map[string]bool   `json:"practiceResults,omitempty"`
}

// Clone returns a deep copy so callers never alias the owner's maps.
func (p ModuleProgress) Clone() ModuleProgress {
	p.LastAttemptAnswers = cloneStrings(p.LastAttemptAnswers)
	p.LastAttemptResults = cloneBools(p.LastAttemptResults)
	p.PracticeAnswers = cloneStrings(p.PracticeAnswers)
	p.PracticeResults = cloneBools(p.PracticeResults)
	return p
}

func cloneStrings(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneBools(m map[string]bool) map[string]bool {
	if m == nil {
		return nil
	}
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ModuleSummary is the catalog listing entry enriched with learner state.
type ModuleSummary struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	ComingSoon        bool   `json:"comingSoon"`
	Available         bool   `json:"available"`
	Completed         bool   `json:"completed"`
	PracticeCompleted bool   `json:"practiceCompleted"`
	BestScore         int    `json:"bestScore"`
	TotalQuestions    int    `json:"totalQuestions"`
}
