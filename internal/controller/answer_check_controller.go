package controller

import (
	"net/http"
	"triz_edu_backend/internal/service"
	"triz_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnswerCheckController struct {
	AnswerCheckService *service.AnswerCheckService
}

func NewAnswerCheckController(s *service.AnswerCheckService) *AnswerCheckController {
	return &AnswerCheckController{AnswerCheckService: s}
}

type CheckAnswerRequest struct {
	UserAnswer      string `json:"userAnswer"`
	ReferenceAnswer string `json:"referenceAnswer"`
	QuestionText    string `json:"questionText"`
}

// @Summary Check a free-text answer
// @Description Lenient comparison with a reference answer
// @Tags Check
// @Accept json
// @Produce json
// @Param request body CheckAnswerRequest true "Answer and reference"
// @Success 200 {object} model.AnswerCheck
// @Failure 400 {object} map[string]string
// @Router /api/check-answer [post]
func (c *AnswerCheckController) Check(ctx *gin.Context) {
	var req CheckAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.PlainError(ctx, http.StatusBadRequest, err.Error(), "")
		return
	}

	result, err := c.AnswerCheckService.Check(req.UserAnswer, req.ReferenceAnswer)
	if err != nil {
		util.PlainError(ctx, http.StatusBadRequest, "Missing userAnswer or referenceAnswer", "")
		return
	}
	ctx.JSON(http.StatusOK, result)
}
