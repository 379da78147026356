package model

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type QuestionKind string

const (
	KindMultipleChoice QuestionKind = "mc"
	KindFreeForm       QuestionKind = "free-form"
)

// Question is either a *MultipleChoiceQuestion or a *FreeFormQuestion.
type Question interface {
	QuestionID() string
	Kind() QuestionKind
	Prompt() string
	Reference() string
	Explain() string
	isQuestion()
}

type QuestionOption struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

type MultipleChoiceQuestion struct {
	ID            string
	Text          string
	Options       []QuestionOption
	CorrectAnswer string
	Explanation   string
}

func (q *MultipleChoiceQuestion) QuestionID() string { return q.ID }
func (q *MultipleChoiceQuestion) Kind() QuestionKind { return KindMultipleChoice }
func (q *MultipleChoiceQuestion) Prompt() string     { return q.Text }
func (q *MultipleChoiceQuestion) Reference() string  { return q.CorrectAnswer }
func (q *MultipleChoiceQuestion) Explain() string    { return q.Explanation }
func (*MultipleChoiceQuestion) isQuestion()          {}

// OptionLabel returns the label of the option with the given id, or the id
// itself when no option matches.
func (q *MultipleChoiceQuestion) OptionLabel(id string) string {
	for _, o := range q.Options {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}

type FreeFormQuestion struct {
	ID            string
	Text          string
	CorrectAnswer string
	Explanation   string
}

func (q *FreeFormQuestion) QuestionID() string { return q.ID }
func (q *FreeFormQuestion) Kind() QuestionKind { return KindFreeForm }
func (q *FreeFormQuestion) Prompt() string     { return q.Text }
func (q *FreeFormQuestion) Reference() string  { return q.CorrectAnswer }
func (q *FreeFormQuestion) Explain() string    { return q.Explanation }
func (*FreeFormQuestion) isQuestion()          {}

// questionRecord is the flat wire/catalog shape of a question.
type questionRecord struct {
	ID            string           `json:"id" yaml:"id"`
	Kind          QuestionKind     `json:"type" yaml:"type"`
	Text          string           `json:"text" yaml:"text"`
	Options       []QuestionOption `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswer string           `json:"correctAnswer,omitempty" yaml:"correctAnswer"`
	Explanation   string           `json:"explanation,omitempty" yaml:"explanation"`
}

func (r questionRecord) toQuestion() (Question, error) {
	switch r.Kind {
	case KindMultipleChoice:
		if len(r.Options) == 0 {
			return nil, fmt.Errorf("question %q: multiple-choice question has no options", r.ID)
		}
		found := false
		for _, o := range r.Options {
			if o.ID == r.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("question %q: correct answer %q is not one of the options", r.ID, r.CorrectAnswer)
		}
		return &MultipleChoiceQuestion{
			ID:            r.ID,
			Text:          r.Text,
			Options:       r.Options,
			CorrectAnswer: r.CorrectAnswer,
			Explanation:   r.Explanation,
		}, nil
	case KindFreeForm:
		if len(r.Options) > 0 {
			return nil, fmt.Errorf("question %q: free-form question must not carry options", r.ID)
		}
		return &FreeFormQuestion{
			ID:            r.ID,
			Text:          r.Text,
			CorrectAnswer: r.CorrectAnswer,
			Explanation:   r.Explanation,
		}, nil
	default:
		return nil, fmt.Errorf("question %q: unknown question type %q", r.ID, r.Kind)
	}
}

func recordOf(q Question) questionRecord {
	r := questionRecord{
		ID:            q.QuestionID(),
		Kind:          q.Kind(),
		Text:          q.Prompt(),
		CorrectAnswer: q.Reference(),
		Explanation:   q.Explain(),
	}
	if mc, ok := q.(*MultipleChoiceQuestion); ok {
		r.Options = mc.Options
	}
	return r
}

// Questions is an ordered question set that knows how to decode its variants.
type Questions []Question

func (qs *Questions) UnmarshalYAML(node *yaml.Node) error {
	var records []questionRecord
	if err := node.Decode(&records); err != nil {
		return err
	}
	return qs.fromRecords(records)
}

func (qs *Questions) UnmarshalJSON(data []byte) error {
	var records []questionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	return qs.fromRecords(records)
}

func (qs Questions) MarshalJSON() ([]byte, error) {
	records := make([]questionRecord, 0, len(qs))
	for _, q := range qs {
		records = append(records, recordOf(q))
	}
	return json.Marshal(records)
}

func (qs *Questions) fromRecords(records []questionRecord) error {
	out := make(Questions, 0, len(records))
	for _, r := range records {
		q, err := r.toQuestion()
		if err != nil {
			return err
		}
		out = append(out, q)
	}
	*qs = out
	return nil
}

// Redacted returns a copy of the set with answers and explanations removed,
// for serving a test before it is graded.
func (qs Questions) Redacted() Questions {
	out := make(Questions, 0, len(qs))
	for _, q := range qs {
		switch v := q.(type) {
		case *MultipleChoiceQuestion:
			out = append(out, &MultipleChoiceQuestion{ID: v.ID, Text: v.Text, Options: v.Options})
		case *FreeFormQuestion:
			out = append(out, &FreeFormQuestion{ID: v.ID, Text: v.Text})
		}
	}
	return out
}
