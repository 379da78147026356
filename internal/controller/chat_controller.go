package controller

import (
	"errors"
	"io"
	"net/http"
	"triz_edu_backend/internal/model"
	"triz_edu_backend/internal/service"
	"triz_edu_backend/internal/util"
	"triz_edu_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatController struct {
	AIService *service.AIService
}

func NewChatController(aiService *service.AIService) *ChatController {
	return &ChatController{AIService: aiService}
}

type ChatRequest struct {
	Messages []model.ChatMessage `json:"messages" binding:"dive"`
}

// Relay forwards a chat turn to GigaChat and streams the provider's events
// back unchanged.
// @Summary Chat with the tutor
// @Description Streams GigaChat server-sent events verbatim
// @Tags Chat
// @Accept json
// @Produce text/event-stream
// @Param request body ChatRequest true "Conversation so far, system prompt first"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/chat [post]
func (c *ChatController) Relay(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.PlainError(ctx, http.StatusBadRequest, err.Error(), "")
		return
	}

	body, err := c.AIService.StreamCompletion(ctx.Request.Context(), req.Messages)
	if err != nil {
		c.relayError(ctx, err)
		return
	}
	defer body.Close()

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Status(http.StatusOK)
	ctx.Writer.Flush()

	buf := make([]byte, 4096)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			if _, werr := ctx.Writer.Write(buf[:n]); werr != nil {
				return
			}
			ctx.Writer.Flush()
		}
		if err != nil {
			if err != io.EOF && ctx.Request.Context().Err() == nil {
				logger.Log.Warn("Chat stream interrupted", zap.Error(err))
			}
			return
		}
	}
}

func (c *ChatController) relayError(ctx *gin.Context, err error) {
	var upstream *util.UpstreamError
	switch {
	case errors.Is(err, util.ErrNoMessages):
		util.PlainError(ctx, http.StatusBadRequest, "No messages provided", "")
	case errors.Is(err, util.ErrCredentialsNotConfigured):
		util.PlainError(ctx, http.StatusInternalServerError, err.Error(), "")
	case errors.As(err, &upstream):
		util.PlainError(ctx, http.StatusBadGateway, upstream.Error(), upstream.Body)
	default:
		logger.Log.Error("Chat relay failed", zap.Error(err))
		util.PlainError(ctx, http.StatusInternalServerError, err.Error(), "")
	}
}
