package status

import (
	"net/http"

	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

// ChannelStatusProvider supplies the current delivery channel snapshot.
type ChannelStatusProvider interface {
	Status() campaign.StatusPayload
}

type IStatusController interface {
	GetStatus(ctx *gin.Context)
}

type StatusController struct {
	channel ChannelStatusProvider
	Logger  *logger.Logger
}

func NewStatusController(channel ChannelStatusProvider, loggerInstance *logger.Logger) IStatusController {
	return &StatusController{
		channel: channel,
		Logger:  loggerInstance,
	}
}

// GetStatus returns channel readiness and, while logging in, the
// pending QR code.
func (c *StatusController) GetStatus(ctx *gin.Context) {
	snapshot := c.channel.Status()
	ctx.JSON(http.StatusOK, StatusResponse{
		IsReady: snapshot.IsReady,
		QRCode:  snapshot.QRCode,
	})
}
