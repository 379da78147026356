package service

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
	"triz_edu_backend/internal/model"
	"triz_edu_backend/pkg/logger"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const tutorPersona = "Ты — преподаватель теории решения изобретательских задач (ТРИЗ). " +
	"Твоя задача — помочь студенту разобраться в теме. Изучи задание, ответы студента, " +
	"его вопрос и проконсультируй его по теме. Будь вежлив, обсуждай только ТРИЗ и смежные " +
	"темы (например, креативность, алгоритмы и т.д.). Но не обсуждай нерелевантные темы. " +
	"Обращайся к студенту напрямую на «вы» — например, «ваш ответ», «вы правильно заметили», " +
	"«давайте разберём». Не упоминай студента в третьем лице."

const notAnswered = "Не отвечено"

// BuildSystemPrompt renders the tutor persona followed by the task the learner
// is working on and, for quiz tasks, their answers next to the correct ones.
func BuildSystemPrompt(task model.TrainerTask, answers map[string]string) string {
	var b strings.Builder
	b.WriteString(tutorPersona)

	switch {
	case task.Exercise != nil:
		ex := task.Exercise
		b.WriteString("\n\n--- Задание ---\n")
		b.WriteString(ex.Title)
		b.WriteString("\n")
		b.WriteString(ex.Description)
		if len(ex.Hints) > 0 {
			b.WriteString("\n\n--- Ответ и пояснение ---")
			for _, h := range ex.Hints {
				b.WriteString("\n" + h.Title + ": " + h.Content)
			}
		}
	case task.Section != nil:
		sec := task.Section
		b.WriteString("\n\n--- Задание: " + sec.Title + " ---")
		if sec.Description != "" {
			b.WriteString("\n" + sec.Description)
		}
		for _, q := range sec.Questions {
			answer := answers[q.QuestionID()]
			if answer == "" {
				answer = notAnswered
			}
			userLabel, correctLabel := answer, q.Reference()
			if mc, ok := q.(*model.MultipleChoiceQuestion); ok {
				userLabel = mc.OptionLabel(answer)
				correctLabel = mc.OptionLabel(mc.CorrectAnswer)
			}
			b.WriteString("\n\nВопрос: " + q.Prompt())
			b.WriteString("\nОтвет студента: " + userLabel)
			b.WriteString("\nПравильный ответ: " + correctLabel)
		}
	}
	return b.String()
}

// DecodeStream reads a completion event stream, calling onDelta for every
// non-empty content fragment, and returns the assembled reply. Lines that are
// not data frames and frames that fail to decode are skipped. The stream ends
// at [DONE] or EOF.
func DecodeStream(r io.Reader, onDelta func(string)) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var reply strings.Builder
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			break
		}

		var frame openai.ChatCompletionStreamResponse
		if err := json.Unmarshal([]byte(data), &frame); err != nil {
			logger.Log.Debug("Skipping malformed stream frame", zap.Error(err))
			continue
		}
		if len(frame.Choices) == 0 {
			continue
		}
		delta := frame.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		reply.WriteString(delta)
		if onDelta != nil {
			onDelta(delta)
		}
	}
	return reply.String(), scanner.Err()
}

// ChatService runs whole chat turns for callers that want decoded text rather
// than the raw stream.
type ChatService struct {
	ai *AIService
}

func NewChatService(ai *AIService) *ChatService {
	return &ChatService{ai: ai}
}

// Complete sends messages and returns the assistant's reply, reporting each
// fragment to onDelta as it arrives.
func (s *ChatService) Complete(ctx context.Context, messages []model.ChatMessage, onDelta func(string)) (string, error) {
	body, err := s.ai.StreamCompletion(ctx, messages)
	if err != nil {
		return "", err
	}
	defer body.Close()
	return DecodeStream(body, onDelta)
}
