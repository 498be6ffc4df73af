package contacts

import (
	"errors"
	"net/http"

	useCaseContacts "go-bulk-messaging-dashboard/src/application/usecases/contacts"
	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IContactsController interface {
	Upload(ctx *gin.Context)
}

type ContactsController struct {
	extractor useCaseContacts.IContactExtractor
	Logger    *logger.Logger
}

func NewContactsController(extractor useCaseContacts.IContactExtractor, loggerInstance *logger.Logger) IContactsController {
	return &ContactsController{
		extractor: extractor,
		Logger:    loggerInstance,
	}
}

// Upload parses an uploaded contact file and returns the extracted
// contacts without persisting anything.
func (c *ContactsController) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("contactFile")
	if err != nil {
		c.Logger.Error("Contact upload without file", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No contact file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Logger.Error("Couldn't open uploaded contact file", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading uploaded file"})
		return
	}
	defer file.Close()

	extracted, err := c.extractor.Extract(fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, campaign.ErrUnsupportedFormat) {
			c.Logger.Warn("Unsupported contact file format",
				zap.String("fileName", fileHeader.Filename), zap.Error(err))
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Logger.Error("Error extracting contacts",
			zap.String("fileName", fileHeader.Filename), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing contact file"})
		return
	}

	c.Logger.Info("Contacts extracted from upload",
		zap.String("fileName", fileHeader.Filename),
		zap.Int("count", len(extracted)))

	ctx.JSON(http.StatusOK, UploadResponse{
		Contacts: extracted,
		Count:    len(extracted),
	})
}
