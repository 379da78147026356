package controller

import (
	"strconv"
	"triz_edu_backend/internal/service"
	"triz_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TrainerController struct {
	TrainerService *service.TrainerService
}

func NewTrainerController(trainerService *service.TrainerService) *TrainerController {
	return &TrainerController{TrainerService: trainerService}
}

type TrainerCheckRequest struct {
	Answers map[string]string `json:"answers"`
}

// @Summary List trainer tasks
// @Description Every practice task across authored modules, answers hidden
// @Tags Trainer
// @Produce json
// @Success 200 {object} util.Response{data=[]model.TrainerTask}
// @Router /api/trainer/tasks [get]
func (c *TrainerController) Tasks(ctx *gin.Context) {
	util.Success(ctx, c.TrainerService.Tasks())
}

// @Summary Random trainer task
// @Description Picks a practice task, never the previous one when there is a choice
// @Tags Trainer
// @Produce json
// @Param previous query int false "Index of the task shown last"
// @Success 200 {object} util.Response{data=model.TrainerTask}
// @Failure 404 {object} util.Response
// @Router /api/trainer/random [get]
func (c *TrainerController) Random(ctx *gin.Context) {
	previous := -1
	if raw := ctx.Query("previous"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "previous must be an integer")
			return
		}
		previous = n
	}

	task, err := c.TrainerService.Random(previous)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, task)
}

// @Summary Check trainer task
// @Description Grades a quiz task without recording progress and returns the tutor prompt
// @Tags Trainer
// @Accept json
// @Produce json
// @Param index path int true "Task index"
// @Param request body TrainerCheckRequest true "Answers keyed by question ID"
// @Success 200 {object} util.Response{data=model.TrainerCheckResult}
// @Failure 404 {object} util.Response
// @Router /api/trainer/tasks/{index}/check [post]
func (c *TrainerController) Check(ctx *gin.Context) {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		util.BadRequest(ctx, "index must be an integer")
		return
	}

	var req TrainerCheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.TrainerService.Check(index, req.Answers)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
