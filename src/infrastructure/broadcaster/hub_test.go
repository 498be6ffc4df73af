package broadcaster

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func setupLogger(t *testing.T) *logger.Logger {
	loggerInstance, err := logger.NewDevelopmentLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return loggerInstance
}

func setupHubServer(t *testing.T, status StatusProvider) (*Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(status, setupLogger(t))
	stop := make(chan struct{})
	go hub.Run(stop)
	t.Cleanup(func() { close(stop) })

	router := gin.New()
	router.GET("/events", hub.ServeWS)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/events"
	return hub, wsURL
}

func dial(t *testing.T, wsURL string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to dial websocket: %v", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	assert.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read websocket message: %v", err)
	}
	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(payload, &decoded))
	return decoded
}

func TestNewSubscriberGetsStatusSnapshot(t *testing.T) {
	_, wsURL := setupHubServer(t, func() campaign.StatusPayload {
		return campaign.StatusPayload{IsReady: true}
	})

	conn := dial(t, wsURL)

	snapshot := readEvent(t, conn)
	assert.Equal(t, campaign.EventStatus, snapshot["event"])
	payload := snapshot["payload"].(map[string]any)
	assert.Equal(t, true, payload["isReady"])
}

func TestPublishReachesSubscriberInOrder(t *testing.T) {
	hub, wsURL := setupHubServer(t, func() campaign.StatusPayload {
		return campaign.StatusPayload{}
	})

	conn := dial(t, wsURL)
	readEvent(t, conn) // status snapshot

	for i := 1; i <= 3; i++ {
		hub.Publish(campaign.Event{
			Name:    campaign.EventProgress,
			Payload: campaign.ProgressPayload{Current: i, Total: 3},
		})
	}

	for i := 1; i <= 3; i++ {
		event := readEvent(t, conn)
		assert.Equal(t, campaign.EventProgress, event["event"])
		payload := event["payload"].(map[string]any)
		assert.Equal(t, float64(i), payload["current"])
	}
}

func TestMultipleSubscribersAllReceive(t *testing.T) {
	hub, wsURL := setupHubServer(t, func() campaign.StatusPayload {
		return campaign.StatusPayload{}
	})

	first := dial(t, wsURL)
	second := dial(t, wsURL)
	readEvent(t, first)
	readEvent(t, second)

	hub.Publish(campaign.Event{Name: campaign.EventReady})

	assert.Equal(t, campaign.EventReady, readEvent(t, first)["event"])
	assert.Equal(t, campaign.EventReady, readEvent(t, second)["event"])
}

func TestSubscriberDisconnectDoesNotBreakBroadcast(t *testing.T) {
	hub, wsURL := setupHubServer(t, func() campaign.StatusPayload {
		return campaign.StatusPayload{}
	})

	leaver := dial(t, wsURL)
	stayer := dial(t, wsURL)
	readEvent(t, leaver)
	readEvent(t, stayer)

	leaver.Close()
	// Give the hub a moment to unregister the closed session.
	time.Sleep(50 * time.Millisecond)

	hub.Publish(campaign.Event{Name: campaign.EventReady})
	assert.Equal(t, campaign.EventReady, readEvent(t, stayer)["event"])
}

func TestUpgradeRejectsPlainRequestGracefully(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewHub(nil, setupLogger(t))
	stop := make(chan struct{})
	go hub.Run(stop)
	t.Cleanup(func() { close(stop) })

	router := gin.New()
	router.GET("/events", hub.ServeWS)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/events")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
