package controller

import (
	"triz_edu_backend/internal/service"
	"triz_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	LearningService *service.LearningService
}

func NewProgressController(learningService *service.LearningService) *ProgressController {
	return &ProgressController{LearningService: learningService}
}

// @Summary All progress
// @Tags Progress
// @Produce json
// @Success 200 {object} util.Response{data=[]model.ModuleProgress}
// @Router /api/progress [get]
func (c *ProgressController) GetAll(ctx *gin.Context) {
	util.Success(ctx, c.LearningService.AllProgress())
}

// @Summary Module progress
// @Tags Progress
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {object} util.Response{data=model.ModuleProgress}
// @Failure 404 {object} util.Response
// @Router /api/progress/{id} [get]
func (c *ProgressController) GetModuleProgress(ctx *gin.Context) {
	p, ok := c.LearningService.GetProgress(ctx.Param("id"))
	if !ok {
		util.NotFound(ctx, "No progress recorded for module")
		return
	}
	util.Success(ctx, p)
}

// @Summary Clear progress
// @Description Deletes every learner record
// @Tags Progress
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/progress [delete]
func (c *ProgressController) Clear(ctx *gin.Context) {
	c.LearningService.ResetAll()
	util.Success(ctx, gin.H{"message": "Progress cleared"})
}
