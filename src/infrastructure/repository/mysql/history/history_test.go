package history

import (
	"testing"
	"time"

	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupLogger(t *testing.T) *logger.Logger {
	loggerInstance, err := logger.NewDevelopmentLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return loggerInstance
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm: %v", err)
	}
	return gormDB, mock
}

func TestRecordPersistsOutcome(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repository := NewHistoryRepository(gormDB, setupLogger(t))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `delivery_records`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	outcome := campaign.DeliveryOutcome{
		Contact:         campaign.Contact{Name: "Asha", Number: "9876543210"},
		Status:          campaign.DeliveryStatusSent,
		RenderedMessage: "Hello Asha",
		SequenceIndex:   0,
		Timestamp:       time.Now(),
	}

	err := repository.Record("run-1", outcome)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordReturnsRepositoryError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repository := NewHistoryRepository(gormDB, setupLogger(t))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `delivery_records`").
		WillReturnError(gorm.ErrInvalidDB)
	mock.ExpectRollback()

	outcome := campaign.DeliveryOutcome{
		Contact:   campaign.Contact{Name: "Asha", Number: "9876543210"},
		Status:    campaign.DeliveryStatusFailed,
		Timestamp: time.Now(),
	}

	err := repository.Record("run-1", outcome)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentReturnsNewestFirst(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repository := NewHistoryRepository(gormDB, setupLogger(t))

	rows := sqlmock.NewRows([]string{"id", "run_id", "contact_name", "number", "status", "message", "error", "sent_at", "created_at"}).
		AddRow(2, "run-1", "Ravi", "9876543211", "failed", "Hello Ravi", "number not found on WhatsApp", time.Now(), time.Now()).
		AddRow(1, "run-1", "Asha", "9876543210", "sent", "Hello Asha", "", time.Now(), time.Now())

	mock.ExpectQuery("SELECT \\* FROM `delivery_records` ORDER BY id desc").
		WillReturnRows(rows)

	records, err := repository.Recent(10)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 2, records[0].ID)
	assert.Equal(t, "failed", records[0].Status)
	assert.Equal(t, 1, records[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentDefaultsLimit(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repository := NewHistoryRepository(gormDB, setupLogger(t))

	mock.ExpectQuery("SELECT \\* FROM `delivery_records` ORDER BY id desc").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	records, err := repository.Recent(0)
	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}
