package whatsapp

import (
	"fmt"

	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"github.com/tidwall/gjson"
)

// WhatsAppClient wraps the bridge's JSON-RPC surface: recipient
// lookup and the send operations. Session lifecycle notifications are
// consumed by the ChannelManager, not here.
type WhatsAppClient struct {
	rpc    *JsonRpc2Client
	Logger *logger.Logger
}

func NewWhatsAppClient(session string, loggerInstance *logger.Logger) *WhatsAppClient {
	return &WhatsAppClient{
		rpc:    NewJsonRpc2Client(session, loggerInstance),
		Logger: loggerInstance,
	}
}

// Init connects to the bridge and starts the read loop.
func (c *WhatsAppClient) Init(address string) error {
	if err := c.rpc.Dial(address); err != nil {
		return fmt.Errorf("couldn't connect to WhatsApp bridge at %s: %w", address, err)
	}
	go c.rpc.ReceiveData()
	return nil
}

func (c *WhatsAppClient) Notifications() (chan JsonRpc2Notification, string, error) {
	return c.rpc.GetNotificationChannel()
}

func (c *WhatsAppClient) RemoveNotifications(channelUuid string) {
	c.rpc.RemoveNotificationChannel(channelUuid)
}

func (c *WhatsAppClient) Close() error {
	return c.rpc.Close()
}

// ResolveNumber asks the bridge whether the normalized address is a
// registered platform identity and returns its canonical recipient id.
func (c *WhatsAppClient) ResolveNumber(address string) (string, error) {
	type Request struct {
		Address string `json:"address"`
	}

	rawData, err := c.rpc.getRaw("resolveNumber", Request{Address: address})
	if err != nil {
		return "", err
	}

	result := gjson.Parse(rawData)
	if !result.Get("found").Bool() {
		return "", campaign.ErrRecipientNotFound
	}

	id := result.Get("id").String()
	if id == "" {
		id = address
	}
	return id, nil
}

// SendText sends a plain text message to the resolved recipient.
func (c *WhatsAppClient) SendText(recipient string, message string) error {
	type Request struct {
		Recipient string `json:"recipient"`
		Message   string `json:"message"`
	}

	_, err := c.rpc.getRaw("send", Request{Recipient: recipient, Message: message})
	return err
}

// SendMedia sends a media attachment with the message as its caption.
// The media file must be readable by the bridge process.
func (c *WhatsAppClient) SendMedia(recipient string, message string, media *campaign.Media) error {
	type Request struct {
		Recipient string `json:"recipient"`
		Caption   string `json:"caption"`
		MediaPath string `json:"mediaPath"`
		MimeType  string `json:"mimeType"`
		FileName  string `json:"fileName"`
	}

	_, err := c.rpc.getRaw("send", Request{
		Recipient: recipient,
		Caption:   message,
		MediaPath: media.Path,
		MimeType:  media.MimeType,
		FileName:  media.FileName,
	})
	return err
}
