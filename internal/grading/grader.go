// Package grading compares submitted answers with reference answers and
// decides whether a module test is passed. Everything here is pure.
package grading

import (
	"math"
	"strings"
	"triz_edu_backend/internal/model"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// GradeQuestion reports whether submitted answers q.
//
// Multiple-choice answers must equal the option id exactly (case-insensitive).
// Free-form answers are accepted when either side contains the other; an
// empty submission is never correct.
func GradeQuestion(q model.Question, submitted string) bool {
	answer := normalize(submitted)
	reference := normalize(q.Reference())

	switch q.(type) {
	case *model.MultipleChoiceQuestion:
		return answer == reference
	case *model.FreeFormQuestion:
		if answer == "" {
			return false
		}
		return strings.Contains(answer, reference) || strings.Contains(reference, answer)
	default:
		return false
	}
}

// GradeSet grades every question in order. Missing answers count as empty.
func GradeSet(questions model.Questions, answers map[string]string) (map[string]bool, int) {
	results := make(map[string]bool, len(questions))
	score := 0
	for _, q := range questions {
		correct := GradeQuestion(q, answers[q.QuestionID()])
		results[q.QuestionID()] = correct
		if correct {
			score++
		}
	}
	return results, score
}

// DecidePass applies the same threshold rule to min_score and max_score.
func DecidePass(score int, criteria model.PassCriteria) bool {
	return score >= criteria.Threshold
}

// Percent is score/total rounded to the nearest whole percent.
func Percent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
