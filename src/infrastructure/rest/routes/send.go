package routes

import (
	"go-bulk-messaging-dashboard/src/infrastructure/di"
	sendController "go-bulk-messaging-dashboard/src/infrastructure/rest/controllers/send"
	"go-bulk-messaging-dashboard/src/infrastructure/rest/middlewares"

	"github.com/gin-gonic/gin"
)

func SendRoutes(router *gin.RouterGroup, controller sendController.ISendController, appContext *di.ApplicationContext) {
	group := router.Group("")
	if appContext.AuthEnabled {
		group.Use(middlewares.AuthJWTMiddleware())
	}
	group.POST("/send-messages", controller.SendMessages)
}
