package routes

import (
	"go-bulk-messaging-dashboard/src/infrastructure/di"
	historyController "go-bulk-messaging-dashboard/src/infrastructure/rest/controllers/history"
	"go-bulk-messaging-dashboard/src/infrastructure/rest/middlewares"

	"github.com/gin-gonic/gin"
)

func HistoryRoutes(router *gin.RouterGroup, controller historyController.IHistoryController, appContext *di.ApplicationContext) {
	group := router.Group("")
	if appContext.AuthEnabled {
		group.Use(middlewares.AuthJWTMiddleware())
	}
	group.GET("/history", controller.GetRecent)
}
