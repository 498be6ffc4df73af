package history

import (
	"time"

	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DeliveryRecord is one delivery attempt persisted for run history.
type DeliveryRecord struct {
	ID          int       `gorm:"primaryKey"`
	RunID       string    `gorm:"column:run_id;index"`
	ContactName string    `gorm:"column:contact_name"`
	Number      string    `gorm:"column:number"`
	Status      string    `gorm:"column:status"`
	Message     string    `gorm:"column:message"`
	Error       string    `gorm:"column:error"`
	SentAt      time.Time `gorm:"column:sent_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime:milli"`
}

func (DeliveryRecord) TableName() string {
	return "delivery_records"
}

type HistoryRepositoryInterface interface {
	campaign.HistoryRecorder
	Recent(limit int) ([]DeliveryRecord, error)
}

type Repository struct {
	DB     *gorm.DB
	Logger *logger.Logger
}

func NewHistoryRepository(db *gorm.DB, loggerInstance *logger.Logger) HistoryRepositoryInterface {
	return &Repository{DB: db, Logger: loggerInstance}
}

// Record implements campaign.HistoryRecorder.
func (r *Repository) Record(runID string, outcome campaign.DeliveryOutcome) error {
	record := DeliveryRecord{
		RunID:       runID,
		ContactName: outcome.Contact.Name,
		Number:      outcome.Contact.Number,
		Status:      string(outcome.Status),
		Message:     outcome.RenderedMessage,
		Error:       outcome.Error,
		SentAt:      outcome.Timestamp,
	}

	err := r.DB.Create(&record).Error
	if err != nil {
		r.Logger.Error("Error persisting delivery record",
			zap.String("runId", runID),
			zap.String("number", outcome.Contact.Number),
			zap.Error(err))
		return err
	}
	return nil
}

// Recent returns the latest delivery records, newest first.
func (r *Repository) Recent(limit int) ([]DeliveryRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	var records []DeliveryRecord
	err := r.DB.Order("id desc").Limit(limit).Find(&records).Error
	if err != nil {
		r.Logger.Error("Error fetching delivery history", zap.Error(err))
		return nil, err
	}
	return records, nil
}
