package service

import (
	"testing"
	"triz_edu_backend/internal/grading"
	"triz_edu_backend/internal/model"
	"triz_edu_backend/internal/repository"
	"triz_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainerService_Tasks(t *testing.T) {
	s := NewTrainerService(newTestCatalog(t))
	tasks := s.Tasks()

	// module-1: one exercise and two sections; module-2 is a placeholder; module-3: one section
	require.Len(t, tasks, 4)
	assert.Equal(t, model.TaskExercise, tasks[0].Kind)
	assert.Equal(t, "Модуль 1", tasks[0].ModuleLabel)
	assert.Equal(t, "p1", tasks[1].Section.ID)
	assert.Equal(t, "p2", tasks[2].Section.ID)
	assert.Equal(t, "module-3", tasks[3].ModuleID)
	assert.Equal(t, "Модуль 3", tasks[3].ModuleLabel)
	for i, task := range tasks {
		assert.Equal(t, i, task.Index)
	}

	// answers are hidden until checked
	assert.Empty(t, tasks[1].Section.Questions[0].Reference())
}

func TestTrainerService_RandomNeverRepeats(t *testing.T) {
	s := NewTrainerService(newTestCatalog(t))
	rolls := []int{2, 2, 2, 1}
	s.intn = func(n int) int {
		r := rolls[0]
		rolls = rolls[1:]
		return r
	}

	task, err := s.Random(2)
	require.NoError(t, err)
	assert.Equal(t, 1, task.Index)
	assert.Empty(t, rolls)

	s = NewTrainerService(newTestCatalog(t))
	for i := 0; i < 50; i++ {
		prev := i % 4
		next, err := s.Random(prev)
		require.NoError(t, err)
		assert.NotEqual(t, prev, next.Index)
	}
}

func TestTrainerService_SingleTaskRepeats(t *testing.T) {
	catalog, err := repository.ParseCatalog([]byte(`
modules:
  - id: only
    title: Only
    practiceSections:
      - id: s
        title: S
        questions:
          - { id: q, type: free-form, text: t, correctAnswer: x }
    passCriteria: { type: min_score, threshold: 0, totalQuestions: 0 }
`))
	require.NoError(t, err)

	task, err := NewTrainerService(catalog).Random(0)
	require.NoError(t, err)
	assert.Equal(t, 0, task.Index)
}

func TestTrainerService_Empty(t *testing.T) {
	catalog, err := repository.NewCatalogRepository(nil)
	require.NoError(t, err)
	_, err = NewTrainerService(catalog).Random(-1)
	assert.ErrorIs(t, err, util.ErrTaskNotFound)
}

func TestTrainerService_CheckQuiz(t *testing.T) {
	s := NewTrainerService(newTestCatalog(t))

	res, err := s.Check(1, map[string]string{"p1-q1": "a", "p1-q2": "задачи"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, map[string]bool{"p1-q1": true, "p1-q2": true}, res.Results)
	assert.Equal(t, "Альтшуллер", res.CorrectAnswers["p1-q1"])
	assert.Equal(t, "Генрих Альтшуллер.", res.Explanations["p1-q1"])
	assert.Contains(t, res.SystemPrompt, "Ответ студента: Альтшуллер")
}

func TestTrainerService_CheckExercise(t *testing.T) {
	s := NewTrainerService(newTestCatalog(t))

	res, err := s.Check(0, nil)
	require.NoError(t, err)
	assert.Nil(t, res.Results)
	assert.Equal(t, 0, res.Total)
	require.NotNil(t, res.Task.Exercise)
	assert.Contains(t, res.SystemPrompt, "--- Ответ и пояснение ---")
}

func TestTrainerService_CheckUnknownTask(t *testing.T) {
	s := NewTrainerService(newTestCatalog(t))
	_, err := s.Check(99, nil)
	assert.ErrorIs(t, err, util.ErrTaskNotFound)
	_, err = s.Check(-1, nil)
	assert.ErrorIs(t, err, util.ErrTaskNotFound)
}

func TestAnswerCheckService(t *testing.T) {
	s := NewAnswerCheckService()

	tests := []struct {
		name      string
		user, ref string
		correct   bool
		feedback  string
	}{
		{"contained", "Авторучка синяя", "авторучка", true, "Ответ совпадает с эталонным."},
		{"reference contained", "ручка", "Авторучка", true, "Ответ совпадает с эталонным."},
		{"mismatch", "карандаш", "авторучка", false, "Эталонный ответ: авторучка. Сравните с вашим ответом."},
		{"blank after trim", "   ", "авторучка", false, "Ответ совпадает с эталонным."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Check(tt.user, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.correct, got.Correct)
			assert.Equal(t, tt.feedback, got.Feedback)
			assert.True(t, got.IsStub)
		})
	}

	_, err := s.Check("", "x")
	assert.ErrorIs(t, err, util.ErrMissingReference)
	_, err = s.Check("x", "")
	assert.ErrorIs(t, err, util.ErrMissingReference)
}

func TestAnswerCheckService_AgreesWithGrader(t *testing.T) {
	s := NewAnswerCheckService()
	ref := "Идеальный конечный результат"

	for _, answer := range []string{"идеальный конечный результат", "ИКР", "  конечный  ", "результат", "   ", "ресурс"} {
		got, err := s.Check(answer, ref)
		require.NoError(t, err)
		want := grading.GradeQuestion(&model.FreeFormQuestion{CorrectAnswer: ref}, answer)
		assert.Equal(t, want, got.Correct, answer)
	}
}
