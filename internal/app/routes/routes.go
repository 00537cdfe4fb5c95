package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/clgres/resultapi/internal/app/controllers"
)

// SetupRouter configures all application routes.
// Result routes are served both at the root, where existing clients call them,
// and under the versioned /api/v1 group.
func SetupRouter(
	router *gin.Engine,
	resultController *controllers.ResultController,
	healthController *controllers.HealthController,
) {
	router.GET("/ping", healthController.Ping)
	router.GET("/health", healthController.Health)

	registerResultRoutes(router.Group(""), resultController)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthController.Health)
		registerResultRoutes(v1, resultController)
	}
}

func registerResultRoutes(group *gin.RouterGroup, resultController *controllers.ResultController) {
	results := group.Group("/results")
	{
		results.GET("/:rollNo", resultController.GetStudentResults)
		results.GET("/:rollNo/:sem", resultController.GetSemesterResult)
	}
}
