package campaign

// Event names carried over the dashboard event channel.
const (
	EventQR            = "qr"
	EventReady         = "ready"
	EventAuthenticated = "authenticated"
	EventAuthFailure   = "auth_failure"
	EventDisconnected  = "disconnected"
	EventStatus        = "status"
	EventMessageLog    = "messageLog"
	EventProgress      = "messageProgress"
	EventBulkComplete  = "bulkComplete"
	EventBulkError     = "bulkError"
)

// Event is a single dashboard notification.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// ProgressPayload is emitted once per processed contact, in strictly
// increasing Current order.
type ProgressPayload struct {
	RunID   string         `json:"runId"`
	Current int            `json:"current"`
	Total   int            `json:"total"`
	Contact Contact        `json:"contact"`
	Status  DeliveryStatus `json:"status"`
	Error   string         `json:"error,omitempty"`
}

// StatusPayload is the channel-readiness snapshot pushed to late
// subscribers and served by the status endpoint.
type StatusPayload struct {
	IsReady bool   `json:"isReady"`
	QRCode  string `json:"qrCode,omitempty"`
}
