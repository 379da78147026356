package util

import (
	"errors"
	"net/http"
	"triz_edu_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the JSON envelope shared by the learning API.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}

// PlainError writes the flat {error, details} body used by the chat relay
// and the answer check endpoint.
func PlainError(c *gin.Context, code int, message, details string) {
	body := gin.H{"error": message}
	if details != "" {
		body["details"] = details
	}
	c.JSON(code, body)
}

// ServiceError maps a service error onto the response envelope.
func ServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrModuleNotFound), errors.Is(err, ErrTaskNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, ErrModuleNotAvailable), errors.Is(err, ErrModuleComingSoon):
		Forbidden(c, err.Error())
	case IsValidation(err):
		BadRequest(c, err.Error())
	default:
		LogInternalError(c, err)
	}
}
