package service

import (
	"errors"
	"net/http"
	"testing"
	"triz_edu_backend/internal/model"
	"triz_edu_backend/internal/repository"
	"triz_edu_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testCatalog = `
modules:
  - id: module-1
    title: Введение
    theory: "## ТРИЗ"
    practiceExercises:
      - id: ex-1
        title: Противоречие зонта
        description: Опишите противоречие.
        hints:
          - { title: Ответ, content: Площадь против компактности }
    practiceSections:
      - id: p1
        title: Разминка
        description: Два вопроса
        questions:
          - id: p1-q1
            type: mc
            text: Кто автор ТРИЗ?
            options:
              - { id: a, label: Альтшуллер }
              - { id: b, label: Эйнштейн }
            correctAnswer: a
            explanation: Генрих Альтшуллер.
          - { id: p1-q2, type: free-form, text: "Что решает ТРИЗ?", correctAnswer: изобретательские задачи }
      - id: p2
        title: Ресурсы
        questions:
          - { id: p2-q1, type: free-form, text: "Что использовать в первую очередь?", correctAnswer: ресурс }
    testSections:
      - id: t1
        title: Тест
        questions:
          - id: t-q1
            type: mc
            text: Что такое ИКР?
            options:
              - { id: a, label: Индекс качества }
              - { id: b, label: Идеальный конечный результат }
              - { id: c, label: Итоговая карта решений }
            correctAnswer: b
          - { id: t-q2, type: free-form, text: Инструмент для письма, correctAnswer: авторучка }
    passCriteria: { type: min_score, threshold: 2, totalQuestions: 2 }
  - id: module-2
    title: Скоро
    comingSoon: true
    passCriteria: { type: min_score, threshold: 0, totalQuestions: 0 }
  - id: module-3
    title: Приёмы
    practiceSections:
      - id: p3
        title: Приёмы
        questions:
          - { id: p3-q1, type: free-form, text: Приём разделения, correctAnswer: дробление }
    testSections:
      - id: t3
        title: Тест
        questions:
          - { id: t3-q1, type: free-form, text: Приём разделения, correctAnswer: дробление }
    passCriteria: { type: max_score, threshold: 1, totalQuestions: 1 }
`

func newTestCatalog(t *testing.T) *repository.CatalogRepository {
	t.Helper()
	catalog, err := repository.ParseCatalog([]byte(testCatalog))
	require.NoError(t, err)
	return catalog
}

// failingStorage loses every write.
type failingStorage struct {
	saves  int
	clears int
}

func (f *failingStorage) Load() []model.ModuleProgress { return nil }

func (f *failingStorage) Save([]model.ModuleProgress) error {
	f.saves++
	return errors.New("disk full")
}

func (f *failingStorage) Clear() error {
	f.clears++
	return errors.New("disk full")
}

// observeLogs routes logger.Log into memory for the rest of the test.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

// truncatedBody declares a longer body than it sends, so the client sees an
// unexpected EOF while reading it.
func truncatedBody(status int, partial string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.WriteHeader(status)
		w.Write([]byte(partial))
	}
}
