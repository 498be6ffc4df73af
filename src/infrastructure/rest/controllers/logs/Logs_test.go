package logs

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockAuditSink struct {
	appendFn func(entry campaign.AuditLogEntry) error
	todayFn  func() ([]campaign.AuditLogEntry, error)
}

func (m *mockAuditSink) Append(entry campaign.AuditLogEntry) error {
	if m.appendFn != nil {
		return m.appendFn(entry)
	}
	return nil
}

func (m *mockAuditSink) Today() ([]campaign.AuditLogEntry, error) {
	if m.todayFn != nil {
		return m.todayFn()
	}
	return nil, nil
}

func setupLogger(t *testing.T) *logger.Logger {
	loggerInstance, err := logger.NewDevelopmentLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return loggerInstance
}

func TestGetTodayLogsReturnsEntries(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sentAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	sink := &mockAuditSink{
		todayFn: func() ([]campaign.AuditLogEntry, error) {
			return []campaign.AuditLogEntry{
				{Contact: campaign.Contact{Name: "Asha", Number: "9876543210"}, Status: campaign.DeliveryStatusSent, Message: "hello Asha", Timestamp: sentAt},
				{Contact: campaign.Contact{Name: "Vik", Number: "9876543211"}, Status: campaign.DeliveryStatusFailed, Message: "hello Vik", Error: "number not found on WhatsApp", Timestamp: sentAt},
			}, nil
		},
	}
	controller := NewLogsController(sink, setupLogger(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/logs", nil)

	controller.GetTodayLogs(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var entries []campaign.AuditLogEntry
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Len(t, entries, 2)
	assert.Equal(t, "Asha", entries[0].Contact.Name)
	assert.Equal(t, campaign.DeliveryStatusFailed, entries[1].Status)
}

func TestGetTodayLogsEmptyDay(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sink := &mockAuditSink{
		todayFn: func() ([]campaign.AuditLogEntry, error) {
			return []campaign.AuditLogEntry{}, nil
		},
	}
	controller := NewLogsController(sink, setupLogger(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/logs", nil)

	controller.GetTodayLogs(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestGetTodayLogsReadFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sink := &mockAuditSink{
		todayFn: func() ([]campaign.AuditLogEntry, error) {
			return nil, errors.New("disk unavailable")
		},
	}
	controller := NewLogsController(sink, setupLogger(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/logs", nil)

	controller.GetTodayLogs(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
