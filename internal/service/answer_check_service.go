package service

import (
	"strings"
	"triz_edu_backend/internal/grading"
	"triz_edu_backend/internal/model"
	"triz_edu_backend/internal/util"
)

// AnswerCheckService compares a free-text answer with a reference answer. It
// stands in for model-based grading and always marks its result as a stub.
type AnswerCheckService struct{}

func NewAnswerCheckService() *AnswerCheckService {
	return &AnswerCheckService{}
}

func (s *AnswerCheckService) Check(userAnswer, referenceAnswer string) (model.AnswerCheck, error) {
	if userAnswer == "" || referenceAnswer == "" {
		return model.AnswerCheck{}, util.ErrMissingReference
	}

	reference := &model.FreeFormQuestion{CorrectAnswer: referenceAnswer}
	check := model.AnswerCheck{
		Correct: grading.GradeQuestion(reference, userAnswer),
		IsStub:  true,
	}

	// feedback keeps the raw comparison, so a blank answer still reads as a match
	user := strings.ToLower(strings.TrimSpace(userAnswer))
	ref := strings.ToLower(strings.TrimSpace(referenceAnswer))
	matches := strings.Contains(user, ref) || strings.Contains(ref, user)
	if matches {
		check.Feedback = "Ответ совпадает с эталонным."
	} else {
		check.Feedback = "Эталонный ответ: " + referenceAnswer + ". Сравните с вашим ответом."
	}
	return check, nil
}
