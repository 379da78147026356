package controller

import (
	"triz_edu_backend/internal/repository"
	"triz_edu_backend/internal/service"
	"triz_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Catalog     *repository.CatalogRepository
	AIService   *service.AIService
	StorageType string
}

func NewHealthController(catalog *repository.CatalogRepository, aiService *service.AIService, storageType string) *HealthController {
	return &HealthController{Catalog: catalog, AIService: aiService, StorageType: storageType}
}

// @Summary Health check
// @Description Service status and component configuration
// @Tags System
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	chat := "not configured"
	if c.AIService.Configured() {
		chat = "configured"
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"catalog":  len(c.Catalog.Modules()),
			"storage":  c.StorageType,
			"gigachat": chat,
			"model":    c.AIService.Model(),
		},
	})
}
