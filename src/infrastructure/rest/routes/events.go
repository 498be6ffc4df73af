package routes

import (
	"go-bulk-messaging-dashboard/src/infrastructure/di"

	"github.com/gin-gonic/gin"
)

// EventRoutes exposes the websocket event channel. The connection
// itself is long-lived, so no auth middleware wraps it; browsers
// cannot attach Authorization headers to websocket upgrades.
func EventRoutes(router *gin.RouterGroup, appContext *di.ApplicationContext) {
	router.GET("/events", appContext.Hub.ServeWS)
}
