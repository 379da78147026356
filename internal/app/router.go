package app

import (
	"triz_edu_backend/docs"
	"triz_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		a.registerModuleRoutes(api, c)
		a.registerProgressRoutes(api, c)
		a.registerTrainerRoutes(api, c)

		api.POST("/check-answer", c.answerCheck.Check)
		api.POST("/chat", c.chat.Relay)
	}
}

func (a *App) registerModuleRoutes(api *gin.RouterGroup, c *controllers) {
	modules := api.Group("/modules")
	{
		modules.GET("", c.module.ListModules)
		modules.GET("/:id", c.module.GetModule)
		modules.GET("/:id/availability", c.module.GetAvailability)
		modules.POST("/:id/test", c.module.SubmitTest)
		modules.POST("/:id/test/reset", c.module.ResetTest)
		modules.POST("/:id/practice", c.module.SubmitPractice)
	}
}

func (a *App) registerProgressRoutes(api *gin.RouterGroup, c *controllers) {
	progress := api.Group("/progress")
	{
		progress.GET("", c.progress.GetAll)
		progress.GET("/:id", c.progress.GetModuleProgress)
		progress.DELETE("", c.progress.Clear)
	}
}

func (a *App) registerTrainerRoutes(api *gin.RouterGroup, c *controllers) {
	trainer := api.Group("/trainer")
	{
		trainer.GET("/tasks", c.trainer.Tasks)
		trainer.GET("/random", c.trainer.Random)
		trainer.POST("/tasks/:index/check", c.trainer.Check)
	}
}
