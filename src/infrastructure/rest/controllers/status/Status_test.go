package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockChannelStatus struct {
	snapshot campaign.StatusPayload
}

func (m *mockChannelStatus) Status() campaign.StatusPayload {
	return m.snapshot
}

func setupLogger(t *testing.T) *logger.Logger {
	loggerInstance, err := logger.NewDevelopmentLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return loggerInstance
}

func TestGetStatusReady(t *testing.T) {
	gin.SetMode(gin.TestMode)

	controller := NewStatusController(&mockChannelStatus{
		snapshot: campaign.StatusPayload{IsReady: true},
	}, setupLogger(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/status", nil)

	controller.GetStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response StatusResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.IsReady)
	assert.Empty(t, response.QRCode)
}

func TestGetStatusPendingLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	controller := NewStatusController(&mockChannelStatus{
		snapshot: campaign.StatusPayload{IsReady: false, QRCode: "data:image/png;base64,abc"},
	}, setupLogger(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/status", nil)

	controller.GetStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response StatusResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.IsReady)
	assert.Equal(t, "data:image/png;base64,abc", response.QRCode)
}
