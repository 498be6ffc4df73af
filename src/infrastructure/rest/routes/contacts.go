package routes

import (
	"go-bulk-messaging-dashboard/src/infrastructure/di"
	contactsController "go-bulk-messaging-dashboard/src/infrastructure/rest/controllers/contacts"
	"go-bulk-messaging-dashboard/src/infrastructure/rest/middlewares"

	"github.com/gin-gonic/gin"
)

func ContactsRoutes(router *gin.RouterGroup, controller contactsController.IContactsController, appContext *di.ApplicationContext) {
	group := router.Group("")
	if appContext.AuthEnabled {
		group.Use(middlewares.AuthJWTMiddleware())
	}
	group.POST("/upload-contacts", controller.Upload)
}
