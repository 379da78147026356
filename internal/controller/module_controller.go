package controller

import (
	"triz_edu_backend/internal/service"
	"triz_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	LearningService *service.LearningService
}

func NewModuleController(learningService *service.LearningService) *ModuleController {
	return &ModuleController{LearningService: learningService}
}

type SubmitTestRequest struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

type SubmitPracticeRequest struct {
	SectionID string            `json:"sectionId"`
	Answers   map[string]string `json:"answers" binding:"required"`
}

// @Summary List modules
// @Description Catalog in order with completion and availability
// @Tags Modules
// @Produce json
// @Success 200 {object} util.Response{data=[]model.ModuleSummary}
// @Router /api/modules [get]
func (c *ModuleController) ListModules(ctx *gin.Context) {
	util.Success(ctx, c.LearningService.ListModules())
}

// @Summary Get module
// @Description Theory, practice and test content. Test answers are hidden.
// @Tags Modules
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {object} util.Response{data=model.Module}
// @Failure 404 {object} util.Response
// @Router /api/modules/{id} [get]
func (c *ModuleController) GetModule(ctx *gin.Context) {
	mod, err := c.LearningService.GetModule(ctx.Param("id"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, mod)
}

// @Summary Module availability
// @Tags Modules
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {object} util.Response
// @Router /api/modules/{id}/availability [get]
func (c *ModuleController) GetAvailability(ctx *gin.Context) {
	id := ctx.Param("id")
	util.Success(ctx, gin.H{
		"moduleId":  id,
		"available": c.LearningService.IsAvailable(id),
	})
}

// @Summary Submit test
// @Description Grades the module test and records the attempt
// @Tags Modules
// @Accept json
// @Produce json
// @Param id path string true "Module ID"
// @Param request body SubmitTestRequest true "Answers keyed by question ID"
// @Success 200 {object} util.Response{data=model.TestResult}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/modules/{id}/test [post]
func (c *ModuleController) SubmitTest(ctx *gin.Context) {
	var req SubmitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.LearningService.SubmitTest(ctx.Param("id"), req.Answers)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Reset test attempt
// @Description Forgets the last attempt; completion and best score are kept
// @Tags Modules
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/modules/{id}/test/reset [post]
func (c *ModuleController) ResetTest(ctx *gin.Context) {
	if err := c.LearningService.ResetAttempt(ctx.Param("id")); err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Attempt reset"})
}

// @Summary Submit practice
// @Description Grades one practice section, or all when sectionId is empty
// @Tags Modules
// @Accept json
// @Produce json
// @Param id path string true "Module ID"
// @Param request body SubmitPracticeRequest true "Answers keyed by question ID"
// @Success 200 {object} util.Response{data=model.PracticeResult}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/modules/{id}/practice [post]
func (c *ModuleController) SubmitPractice(ctx *gin.Context) {
	var req SubmitPracticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.LearningService.SubmitPractice(ctx.Param("id"), req.SectionID, req.Answers)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
