package send

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"go-bulk-messaging-dashboard/src/application/usecases/bulksend"
	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MediaSaver stores an uploaded attachment in transient storage.
type MediaSaver interface {
	SaveMedia(fileHeader *multipart.FileHeader) (*campaign.Media, error)
}

type ISendController interface {
	SendMessages(ctx *gin.Context)
}

type SendController struct {
	orchestrator bulksend.IBulkSendOrchestrator
	media        MediaSaver
	Logger       *logger.Logger
}

func NewSendController(
	orchestrator bulksend.IBulkSendOrchestrator,
	media MediaSaver,
	loggerInstance *logger.Logger,
) ISendController {
	return &SendController{
		orchestrator: orchestrator,
		media:        media,
		Logger:       loggerInstance,
	}
}

// SendMessages validates the request and starts the bulk run. The
// response returns immediately; progress is reported over the event
// channel only.
func (c *SendController) SendMessages(ctx *gin.Context) {
	contactsJSON := ctx.PostForm("contacts")
	if contactsJSON == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No contacts provided"})
		return
	}

	var jobContacts []campaign.Contact
	if err := json.Unmarshal([]byte(contactsJSON), &jobContacts); err != nil {
		c.Logger.Error("Couldn't parse contacts payload", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contacts payload"})
		return
	}

	message := ctx.PostForm("message")

	delayMillis := 0
	if raw := ctx.PostForm("delay"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delay value"})
			return
		}
		delayMillis = parsed
	}

	var media *campaign.Media
	if fileHeader, err := ctx.FormFile("mediaFile"); err == nil {
		media, err = c.media.SaveMedia(fileHeader)
		if err != nil {
			c.Logger.Error("Couldn't store uploaded media", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error storing media file"})
			return
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid media upload"})
		return
	}

	job := &campaign.SendJob{
		Contacts:        jobContacts,
		MessageTemplate: message,
		Media:           media,
		Delay:           time.Duration(delayMillis) * time.Millisecond,
	}

	runID, err := c.orchestrator.Start(job)
	if err != nil {
		switch {
		case errors.Is(err, campaign.ErrJobInProgress):
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, campaign.ErrChannelNotReady),
			errors.Is(err, campaign.ErrNoContacts),
			errors.Is(err, campaign.ErrEmptyMessage):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.Logger.Error("Couldn't start bulk send", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error starting bulk send"})
		}
		return
	}

	c.Logger.Info("Bulk send accepted",
		zap.String("runId", runID),
		zap.Int("contacts", len(jobContacts)),
		zap.Int("delayMillis", delayMillis),
		zap.Bool("hasMedia", media != nil))

	ctx.JSON(http.StatusAccepted, SendResponse{
		Message: "Messages are being sent",
		RunID:   runID,
	})
}
