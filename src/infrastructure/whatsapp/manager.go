package whatsapp

import (
	"encoding/base64"
	"sync"

	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Bridge is the subset of the WhatsApp client the manager depends on.
type Bridge interface {
	ResolveNumber(address string) (string, error)
	SendText(recipient string, message string) error
	SendMedia(recipient string, message string, media *campaign.Media) error
}

// IChannelManager is the delivery channel plus the readiness snapshot
// the dashboard polls.
type IChannelManager interface {
	campaign.DeliveryChannel
	Status() campaign.StatusPayload
}

// ChannelManager owns the channel state (readiness, pending login QR)
// and republishes bridge lifecycle notifications as dashboard events.
// It is the only writer of that state; everyone else reads through it.
type ChannelManager struct {
	client Bridge
	events campaign.EventPublisher
	Logger *logger.Logger

	mu        sync.RWMutex
	ready     bool
	qrDataURL string
}

func NewChannelManager(client Bridge, events campaign.EventPublisher, loggerInstance *logger.Logger) *ChannelManager {
	return &ChannelManager{
		client: client,
		events: events,
		Logger: loggerInstance,
	}
}

// HandleNotifications pumps bridge notifications until stop is closed.
// Run it on its own goroutine.
func (m *ChannelManager) HandleNotifications(notifications chan JsonRpc2Notification, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case n := <-notifications:
			m.handle(n)
		}
	}
}

func (m *ChannelManager) handle(n JsonRpc2Notification) {
	params := gjson.ParseBytes(n.Params)

	switch n.Method {
	case "qr":
		dataURL, err := qrDataURL(params.Get("code").String())
		if err != nil {
			m.Logger.Error("Couldn't render login QR code", zap.Error(err))
			return
		}
		m.mu.Lock()
		m.qrDataURL = dataURL
		m.mu.Unlock()
		m.Logger.Info("Login QR code received")
		m.events.Publish(campaign.Event{Name: campaign.EventQR, Payload: dataURL})

	case "ready":
		m.mu.Lock()
		m.ready = true
		m.qrDataURL = ""
		m.mu.Unlock()
		m.Logger.Info("WhatsApp channel is ready")
		m.events.Publish(campaign.Event{Name: campaign.EventReady})

	case "authenticated":
		m.Logger.Info("WhatsApp session authenticated")
		m.events.Publish(campaign.Event{Name: campaign.EventAuthenticated})

	case "auth_failure":
		reason := params.Get("message").String()
		m.Logger.Error("WhatsApp authentication failed", zap.String("reason", reason))
		m.events.Publish(campaign.Event{Name: campaign.EventAuthFailure, Payload: reason})

	case "disconnected":
		reason := params.Get("reason").String()
		m.mu.Lock()
		m.ready = false
		m.mu.Unlock()
		m.Logger.Warn("WhatsApp channel disconnected", zap.String("reason", reason))
		m.events.Publish(campaign.Event{Name: campaign.EventDisconnected, Payload: reason})
	}
}

func (m *ChannelManager) IsReady() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

// Status returns the snapshot served by the status endpoint and pushed
// to late event subscribers.
func (m *ChannelManager) Status() campaign.StatusPayload {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return campaign.StatusPayload{
		IsReady: m.ready,
		QRCode:  m.qrDataURL,
	}
}

func (m *ChannelManager) ResolveRecipient(address string) (string, error) {
	return m.client.ResolveNumber(address)
}

func (m *ChannelManager) SendText(recipient string, message string) error {
	return m.client.SendText(recipient, message)
}

func (m *ChannelManager) SendMedia(recipient string, message string, media *campaign.Media) error {
	return m.client.SendMedia(recipient, message, media)
}

func qrDataURL(code string) (string, error) {
	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
