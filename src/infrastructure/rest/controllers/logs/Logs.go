package logs

import (
	"net/http"

	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ILogsController interface {
	GetTodayLogs(ctx *gin.Context)
}

type LogsController struct {
	audit  campaign.AuditSink
	Logger *logger.Logger
}

func NewLogsController(audit campaign.AuditSink, loggerInstance *logger.Logger) ILogsController {
	return &LogsController{
		audit:  audit,
		Logger: loggerInstance,
	}
}

// GetTodayLogs returns the current day's audit partition in append
// order. A day without activity yields an empty array.
func (c *LogsController) GetTodayLogs(ctx *gin.Context) {
	entries, err := c.audit.Today()
	if err != nil {
		c.Logger.Error("Couldn't read today's audit log", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading message logs"})
		return
	}

	ctx.JSON(http.StatusOK, entries)
}
