package model

type PassCriteriaType string

const (
	MinScore PassCriteriaType = "min_score"
	// MaxScore is accepted in catalog data but is decided exactly like MinScore.
	MaxScore PassCriteriaType = "max_score"
)

type PassCriteria struct {
	Type           PassCriteriaType `json:"type" yaml:"type"`
	Threshold      int              `json:"threshold" yaml:"threshold"`
	TotalQuestions int              `json:"totalQuestions" yaml:"totalQuestions"`
}

// Section is a named group of questions inside a module's practice or test.
type Section struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Questions   Questions `json:"questions" yaml:"questions"`
}

type ExerciseHint struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

type ExerciseTable struct {
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// PracticeExercise is an open-ended, ungraded task.
type PracticeExercise struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	Table       *ExerciseTable `json:"table,omitempty" yaml:"table,omitempty"`
	Hints       []ExerciseHint `json:"hints" yaml:"hints"`
}

type Module struct {
	ID                string             `json:"id" yaml:"id"`
	Title             string             `json:"title" yaml:"title"`
	Theory            string             `json:"theory" yaml:"theory"`
	PracticeExercises []PracticeExercise `json:"practiceExercises,omitempty" yaml:"practiceExercises,omitempty"`
	PracticeSections  []Section          `json:"practiceSections" yaml:"practiceSections"`
	TestSections      []Section          `json:"testSections" yaml:"testSections"`
	PassCriteria      PassCriteria       `json:"passCriteria" yaml:"passCriteria"`
	ComingSoon        bool               `json:"comingSoon,omitempty" yaml:"comingSoon,omitempty"`
}

// TestQuestions flattens all test sections in order.
func (m *Module) TestQuestions() Questions {
	return flatten(m.TestSections)
}

// PracticeQuestions flattens all practice sections in order.
func (m *Module) PracticeQuestions() Questions {
	return flatten(m.PracticeSections)
}

func (m *Module) PracticeSection(id string) (*Section, bool) {
	for i := range m.PracticeSections {
		if m.PracticeSections[i].ID == id {
			return &m.PracticeSections[i], true
		}
	}
	return nil, false
}

func flatten(sections []Section) Questions {
	var out Questions
	for _, s := range sections {
		out = append(out, s.Questions...)
	}
	return out
}
