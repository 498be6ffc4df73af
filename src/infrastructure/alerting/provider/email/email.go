package email

import (
	"errors"
	"strings"

	"go-bulk-messaging-dashboard/src/infrastructure/alerting/alert"

	gomail "gopkg.in/mail.v2"
)

// AlertProvider sends run notifications over SMTP.
type AlertProvider struct {
	From     string `yaml:"from"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	To       string `yaml:"to"`

	// DefaultAlert is the default alert configuration to use for alerts with the type
	DefaultAlert *alert.Alert `yaml:"default-alert,omitempty"`
}

// Validate the provider's configuration
func (provider *AlertProvider) Validate() error {
	if len(provider.From) == 0 {
		return errors.New("email alert provider requires a from address")
	}
	if len(provider.Host) == 0 || provider.Port == 0 {
		return errors.New("email alert provider requires a host and port")
	}
	if len(provider.To) == 0 {
		return errors.New("email alert provider requires at least one recipient")
	}
	return nil
}

// Send the alert with the given subject and body
func (provider *AlertProvider) Send(alertConfig *alert.Alert, subject string, body string) error {
	recipients := provider.To
	if len(alertConfig.Recipients) > 0 {
		recipients = strings.Join(alertConfig.Recipients, ",")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", provider.From)
	m.SetHeader("To", strings.Split(recipients, ",")...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	var d *gomail.Dialer
	if len(provider.Password) == 0 {
		// Port 25 relays without authentication are still common on
		// internal networks.
		d = &gomail.Dialer{Host: provider.Host, Port: provider.Port}
		d.Auth = nil
	} else {
		d = gomail.NewDialer(provider.Host, provider.Port, provider.Username, provider.Password)
	}

	return d.DialAndSend(m)
}

// GetDefaultAlert returns the provider's default alert configuration
func (provider *AlertProvider) GetDefaultAlert() *alert.Alert {
	return provider.DefaultAlert
}
