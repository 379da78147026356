package service

import (
	"fmt"
	"math/rand"
	"triz_edu_backend/internal/grading"
	"triz_edu_backend/internal/model"
	"triz_edu_backend/internal/repository"
	"triz_edu_backend/internal/util"
)

// TrainerService serves practice material from every authored module in random
// order. Nothing it does is recorded in progress.
type TrainerService struct {
	tasks []model.TrainerTask
	intn  func(n int) int
}

func NewTrainerService(catalog *repository.CatalogRepository) *TrainerService {
	var tasks []model.TrainerTask
	for i := range catalog.Modules() {
		mod := &catalog.Modules()[i]
		if mod.ComingSoon {
			continue
		}
		label := fmt.Sprintf("Модуль %d", i+1)
		for j := range mod.PracticeExercises {
			tasks = append(tasks, model.TrainerTask{
				Kind:        model.TaskExercise,
				ModuleID:    mod.ID,
				ModuleLabel: label,
				Exercise:    &mod.PracticeExercises[j],
			})
		}
		for j := range mod.PracticeSections {
			tasks = append(tasks, model.TrainerTask{
				Kind:        model.TaskQuiz,
				ModuleID:    mod.ID,
				ModuleLabel: label,
				Section:     &mod.PracticeSections[j],
			})
		}
	}
	for i := range tasks {
		tasks[i].Index = i
	}
	return &TrainerService{tasks: tasks, intn: rand.Intn}
}

// Tasks returns every task with answers hidden.
func (s *TrainerService) Tasks() []model.TrainerTask {
	out := make([]model.TrainerTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.Redacted())
	}
	return out
}

// Random picks a task other than previous whenever there is a choice. Pass -1
// when there is no previous task.
func (s *TrainerService) Random(previous int) (model.TrainerTask, error) {
	if len(s.tasks) == 0 {
		return model.TrainerTask{}, util.ErrTaskNotFound
	}
	next := s.intn(len(s.tasks))
	for len(s.tasks) > 1 && next == previous {
		next = s.intn(len(s.tasks))
	}
	return s.tasks[next].Redacted(), nil
}

func (s *TrainerService) task(index int) (model.TrainerTask, error) {
	if index < 0 || index >= len(s.tasks) {
		return model.TrainerTask{}, util.ErrTaskNotFound
	}
	return s.tasks[index], nil
}

// Check grades a quiz task and reveals its answers. Exercise tasks are not
// graded; their result only carries the full task and the chat prompt.
func (s *TrainerService) Check(index int, answers map[string]string) (*model.TrainerCheckResult, error) {
	task, err := s.task(index)
	if err != nil {
		return nil, err
	}

	result := &model.TrainerCheckResult{
		Task:         task,
		SystemPrompt: BuildSystemPrompt(task, answers),
	}
	if task.Section == nil {
		return result, nil
	}

	questions := task.Section.Questions
	result.Results, result.Score = grading.GradeSet(questions, answers)
	result.Total = len(questions)
	result.CorrectAnswers = make(map[string]string, len(questions))
	result.Explanations = make(map[string]string, len(questions))
	for _, q := range questions {
		result.CorrectAnswers[q.QuestionID()] = correctLabel(q)
		if q.Explain() != "" {
			result.Explanations[q.QuestionID()] = q.Explain()
		}
	}
	return result, nil
}

func correctLabel(q model.Question) string {
	if mc, ok := q.(*model.MultipleChoiceQuestion); ok {
		return mc.OptionLabel(mc.CorrectAnswer)
	}
	return q.Reference()
}
