package alert

import (
	"errors"
	"strings"
)

var (
	// ErrAlertWithInvalidDescription is returned when an alert description carries characters
	// that would break the rendered notification body
	ErrAlertWithInvalidDescription = errors.New("alert description must not have \" or \\")
)

// Alert is the configuration for one run-completion notification.
type Alert struct {
	Type Type `yaml:"type"`

	Enabled *bool `yaml:"enabled,omitempty"`

	Description *string `yaml:"description,omitempty"`

	Subject *string `yaml:"subject,omitempty"`

	Recipients []string `yaml:"recipients,omitempty"`
}

// ValidateAndSetDefaults validates the alert's configuration and sets the default value of fields that have one
func (alert *Alert) ValidateAndSetDefaults() error {
	if strings.ContainsAny(alert.GetDescription(), "\"\\") {
		return ErrAlertWithInvalidDescription
	}
	return nil
}

// GetDescription retrieves the description of the alert
func (alert *Alert) GetDescription() string {
	if alert.Description == nil {
		return ""
	}
	return *alert.Description
}

// GetSubject retrieves the subject of the alert
func (alert *Alert) GetSubject() string {
	if alert.Subject == nil {
		return ""
	}
	return *alert.Subject
}

// IsEnabled returns whether an alert is enabled or not
// Returns true if not set
func (alert *Alert) IsEnabled() bool {
	if alert.Enabled == nil {
		return true
	}
	return *alert.Enabled
}
