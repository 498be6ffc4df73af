package routes

import (
	"net/http"

	"go-bulk-messaging-dashboard/src/infrastructure/di"

	"github.com/gin-gonic/gin"
)

func ApplicationRouter(router *gin.Engine, appContext *di.ApplicationContext) {
	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Service is running",
		})
	})

	StatusRoutes(api, appContext.StatusController)
	ContactsRoutes(api, appContext.ContactsController, appContext)
	SendRoutes(api, appContext.SendController, appContext)
	LogsRoutes(api, appContext.LogsController, appContext)

	if appContext.AuthController != nil {
		AuthRoutes(api, appContext.AuthController)
	}
	if appContext.HistoryController != nil {
		HistoryRoutes(api, appContext.HistoryController, appContext)
	}

	EventRoutes(api, appContext)

	// The dashboard itself is a static bundle served from public/.
	router.StaticFile("/", "./public/index.html")
	router.Static("/public", "./public")
}
