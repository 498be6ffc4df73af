package routes

import (
	"go-bulk-messaging-dashboard/src/infrastructure/di"
	logsController "go-bulk-messaging-dashboard/src/infrastructure/rest/controllers/logs"
	"go-bulk-messaging-dashboard/src/infrastructure/rest/middlewares"

	"github.com/gin-gonic/gin"
)

func LogsRoutes(router *gin.RouterGroup, controller logsController.ILogsController, appContext *di.ApplicationContext) {
	group := router.Group("")
	if appContext.AuthEnabled {
		group.Use(middlewares.AuthJWTMiddleware())
	}
	group.GET("/logs", controller.GetTodayLogs)
}
