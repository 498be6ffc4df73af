package routes

import (
	statusController "go-bulk-messaging-dashboard/src/infrastructure/rest/controllers/status"

	"github.com/gin-gonic/gin"
)

func StatusRoutes(router *gin.RouterGroup, controller statusController.IStatusController) {
	router.GET("/status", controller.GetStatus)
}
