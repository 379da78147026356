package service

import (
	"strings"
	"testing"
	"triz_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSystemPrompt_Quiz(t *testing.T) {
	catalog := newTestCatalog(t)
	mod, _ := catalog.FindByID("module-1")
	sec, ok := mod.PracticeSection("p1")
	require.True(t, ok)

	prompt := BuildSystemPrompt(model.TrainerTask{Kind: model.TaskQuiz, Section: sec},
		map[string]string{"p1-q1": "b"})

	assert.True(t, strings.HasPrefix(prompt, tutorPersona))
	assert.Contains(t, prompt, "\n\n--- Задание: Разминка ---\nДва вопроса")
	assert.Contains(t, prompt, "\n\nВопрос: Кто автор ТРИЗ?\nОтвет студента: Эйнштейн\nПравильный ответ: Альтшуллер")
	assert.Contains(t, prompt, "\n\nВопрос: Что решает ТРИЗ?\nОтвет студента: Не отвечено\nПравильный ответ: изобретательские задачи")
}

func TestBuildSystemPrompt_Exercise(t *testing.T) {
	catalog := newTestCatalog(t)
	mod, _ := catalog.FindByID("module-1")

	prompt := BuildSystemPrompt(model.TrainerTask{Kind: model.TaskExercise, Exercise: &mod.PracticeExercises[0]}, nil)

	assert.Equal(t, tutorPersona+
		"\n\n--- Задание ---\nПротиворечие зонта\nОпишите противоречие."+
		"\n\n--- Ответ и пояснение ---\nОтвет: Площадь против компактности", prompt)
}

func TestDecodeStream(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{
			name:   "concatenates deltas",
			stream: "data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n\ndata: {\"choices\":[{\"delta\":{\"content\":\"b\"}}]}\n\ndata: [DONE]\n\n",
			want:   "ab",
		},
		{
			name:   "skips malformed frames and comments",
			stream: ": keep-alive\n\ndata: {broken\n\ndata: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n\n",
			want:   "ok",
		},
		{
			name:   "stops at done",
			stream: "data: {\"choices\":[{\"delta\":{\"content\":\"x\"}}]}\ndata: [DONE]\ndata: {\"choices\":[{\"delta\":{\"content\":\"y\"}}]}\n",
			want:   "x",
		},
		{
			name:   "frames without choices",
			stream: "data: {\"choices\":[]}\n\n",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeStream(strings.NewReader(tt.stream), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
