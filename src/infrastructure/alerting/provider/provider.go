package provider

import (
	"go-bulk-messaging-dashboard/src/infrastructure/alerting/alert"
	"go-bulk-messaging-dashboard/src/infrastructure/alerting/provider/email"
)

// AlertProvider is the interface that each provider should implement
type AlertProvider interface {
	// Validate the provider's configuration
	Validate() error

	// Send an alert using the provider
	Send(alert *alert.Alert, subject string, body string) error

	// GetDefaultAlert returns the provider's default alert configuration
	GetDefaultAlert() *alert.Alert
}

var (
	// Validate provider interface implementation on compile
	_ AlertProvider = (*email.AlertProvider)(nil)
)
