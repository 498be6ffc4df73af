package history

import (
	"net/http"
	"strconv"
	"time"

	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"
	historyRepo "go-bulk-messaging-dashboard/src/infrastructure/repository/mysql/history"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IHistoryController interface {
	GetRecent(ctx *gin.Context)
}

type HistoryController struct {
	repository historyRepo.HistoryRepositoryInterface
	Logger     *logger.Logger
}

func NewHistoryController(repository historyRepo.HistoryRepositoryInterface, loggerInstance *logger.Logger) IHistoryController {
	return &HistoryController{
		repository: repository,
		Logger:     loggerInstance,
	}
}

// GetRecent returns the latest persisted delivery records, newest
// first. The limit query parameter caps the page size.
func (c *HistoryController) GetRecent(ctx *gin.Context) {
	limit := 100
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit value"})
			return
		}
		limit = parsed
	}

	records, err := c.repository.Recent(limit)
	if err != nil {
		c.Logger.Error("Couldn't read delivery history", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading delivery history"})
		return
	}

	response := make([]DeliveryRecordResponse, 0, len(records))
	for _, record := range records {
		response = append(response, DeliveryRecordResponse{
			ID:          record.ID,
			RunID:       record.RunID,
			ContactName: record.ContactName,
			Number:      record.Number,
			Status:      record.Status,
			Message:     record.Message,
			Error:       record.Error,
			SentAt:      record.SentAt.Format(time.RFC3339),
		})
	}

	ctx.JSON(http.StatusOK, response)
}
