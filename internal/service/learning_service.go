package service

import (
	"triz_edu_backend/internal/grading"
	"triz_edu_backend/internal/model"
	"triz_edu_backend/internal/repository"
	"triz_edu_backend/internal/util"
	"triz_edu_backend/pkg/logger"
	"triz_edu_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type LearningService struct {
	Catalog  *repository.CatalogRepository
	Progress *ProgressService
}

func NewLearningService(catalog *repository.CatalogRepository, progress *ProgressService) *LearningService {
	return &LearningService{
		Catalog:  catalog,
		Progress: progress,
	}
}

// ListModules returns the catalog in order with each module's learner state.
func (s *LearningService) ListModules() []model.ModuleSummary {
	modules := s.Catalog.Modules()
	out := make([]model.ModuleSummary, 0, len(modules))
	for _, m := range modules {
		summary := model.ModuleSummary{
			ID:             m.ID,
			Title:          m.Title,
			ComingSoon:     m.ComingSoon,
			Available:      s.Progress.IsAvailable(m.ID),
			TotalQuestions: len(m.TestQuestions()),
		}
		if p, ok := s.Progress.GetModuleProgress(m.ID); ok {
			summary.Completed = p.Completed
			summary.PracticeCompleted = p.PracticeCompleted
			summary.BestScore = p.BestScore
		}
		out = append(out, summary)
	}
	return out
}

// GetModule returns a module's content with test answers hidden.
func (s *LearningService) GetModule(id string) (*model.Module, error) {
	mod, ok := s.Catalog.FindByID(id)
	if !ok {
		return nil, util.ErrModuleNotFound
	}

	out := *mod
	out.TestSections = make([]model.Section, len(mod.TestSections))
	for i, sec := range mod.TestSections {
		sec.Questions = sec.Questions.Redacted()
		out.TestSections[i] = sec
	}
	return &out, nil
}

// openModule resolves id and checks that the learner may submit work for it.
func (s *LearningService) openModule(id string) (*model.Module, error) {
	mod, ok := s.Catalog.FindByID(id)
	if !ok {
		return nil, util.ErrModuleNotFound
	}
	if mod.ComingSoon {
		return nil, util.ErrModuleComingSoon
	}
	if !s.Progress.IsAvailable(id) {
		return nil, util.ErrModuleNotAvailable
	}
	return mod, nil
}

// SubmitTest grades a full test attempt and records it.
func (s *LearningService) SubmitTest(moduleID string, answers map[string]string) (*model.TestResult, error) {
	mod, err := s.openModule(moduleID)
	if err != nil {
		return nil, err
	}
	questions := mod.TestQuestions()
	if len(questions) == 0 {
		return nil, util.ErrNoTestQuestions
	}
	if len(answers) == 0 {
		return nil, util.ErrNoAnswers
	}

	results, score := grading.GradeSet(questions, answers)
	total := len(questions)
	passed, err := s.Progress.SubmitTestAttempt(moduleID, answers, results, score, total)
	if err != nil {
		return nil, err
	}

	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	monitoring.Submissions.WithLabelValues("test", outcome).Inc()
	logger.Log.Info("Test submitted",
		zap.String("module", moduleID),
		zap.Int("score", score),
		zap.Int("total", total),
		zap.Bool("passed", passed),
	)

	return &model.TestResult{
		ModuleID: moduleID,
		Score:    score,
		Total:    total,
		Percent:  grading.Percent(score, total),
		Passed:   passed,
		Results:  results,
		Feedback: feedbackFor(questions, answers, results),
	}, nil
}

// SubmitPractice grades one practice section, or all of them when sectionID
// is empty, and merges the outcome into the module's practice record.
func (s *LearningService) SubmitPractice(moduleID, sectionID string, answers map[string]string) (*model.PracticeResult, error) {
	mod, err := s.openModule(moduleID)
	if err != nil {
		return nil, err
	}

	questions := mod.PracticeQuestions()
	if sectionID != "" {
		sec, ok := mod.PracticeSection(sectionID)
		if !ok {
			return nil, util.ErrSectionNotFound
		}
		questions = sec.Questions
	}
	if len(answers) == 0 {
		return nil, util.ErrNoAnswers
	}

	results, score := grading.GradeSet(questions, answers)
	s.Progress.SubmitPracticeAttempt(moduleID, answers, results)
	monitoring.Submissions.WithLabelValues("practice", "recorded").Inc()

	return &model.PracticeResult{
		ModuleID:  moduleID,
		SectionID: sectionID,
		Score:     score,
		Total:     len(questions),
		Results:   results,
		Feedback:  feedbackFor(questions, answers, results),
	}, nil
}

func (s *LearningService) GetProgress(moduleID string) (model.ModuleProgress, bool) {
	return s.Progress.GetModuleProgress(moduleID)
}

func (s *LearningService) AllProgress() []model.ModuleProgress {
	return s.Progress.All()
}

func (s *LearningService) IsAvailable(moduleID string) bool {
	return s.Progress.IsAvailable(moduleID)
}

// ResetAttempt clears the last test attempt so the test can be retaken.
func (s *LearningService) ResetAttempt(moduleID string) error {
	if _, ok := s.Catalog.FindByID(moduleID); !ok {
		return util.ErrModuleNotFound
	}
	s.Progress.ResetAttempt(moduleID)
	return nil
}

// ResetAll wipes every learner record.
func (s *LearningService) ResetAll() {
	s.Progress.Clear()
	logger.Log.Info("Progress cleared")
}

func feedbackFor(questions model.Questions, answers map[string]string, results map[string]bool) map[string]model.QuestionFeedback {
	out := make(map[string]model.QuestionFeedback, len(questions))
	for _, q := range questions {
		answer := answers[q.QuestionID()]
		if mc, ok := q.(*model.MultipleChoiceQuestion); ok && answer != "" {
			answer = mc.OptionLabel(answer)
		}
		out[q.QuestionID()] = model.QuestionFeedback{
			Correct:       results[q.QuestionID()],
			UserAnswer:    answer,
			CorrectAnswer: correctLabel(q),
			Explanation:   q.Explain(),
		}
	}
	return out
}
