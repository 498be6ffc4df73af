package alerting

import (
	"fmt"

	"go-bulk-messaging-dashboard/src/domain/campaign"
	"go-bulk-messaging-dashboard/src/infrastructure/alerting/alert"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"go.uber.org/zap"
)

// Notifier decorates an event publisher and mails the configured
// recipients when a bulk run finishes or aborts. All other events pass
// through untouched.
type Notifier struct {
	next   campaign.EventPublisher
	config *Config
	Logger *logger.Logger
}

// NewNotifier wraps next. A nil config disables alerting and returns
// next unchanged.
func NewNotifier(next campaign.EventPublisher, config *Config, loggerInstance *logger.Logger) campaign.EventPublisher {
	if config == nil {
		return next
	}
	return &Notifier{
		next:   next,
		config: config,
		Logger: loggerInstance,
	}
}

func (n *Notifier) Publish(event campaign.Event) {
	n.next.Publish(event)

	switch event.Name {
	case campaign.EventBulkComplete:
		summary, ok := event.Payload.(campaign.RunSummary)
		if !ok {
			return
		}
		subject := fmt.Sprintf("Bulk send %s finished: %d sent, %d failed", summary.RunID, summary.Sent, summary.Failed)
		body := fmt.Sprintf("Run %s processed %d contacts.\nSent: %d\nFailed: %d\n",
			summary.RunID, summary.Total, summary.Sent, summary.Failed)
		for _, deliveryErr := range summary.Errors {
			body += fmt.Sprintf("  %s (%s): %s\n", deliveryErr.Contact.Name, deliveryErr.Contact.Number, deliveryErr.Error)
		}
		go n.send(subject, body)

	case campaign.EventBulkError:
		reason, _ := event.Payload.(string)
		subject := "Bulk send aborted"
		body := fmt.Sprintf("A bulk send run aborted before completion: %s\n", reason)
		go n.send(subject, body)
	}
}

func (n *Notifier) send(subject string, body string) {
	alertingProvider := n.config.GetAlertingProviderByAlertType(alert.TypeEmail)
	if alertingProvider == nil {
		return
	}

	if err := alertingProvider.Validate(); err != nil {
		n.Logger.Error("Invalid alerting provider configuration", zap.Error(err))
		n.config.SetAlertingProviderToNil(alertingProvider)
		return
	}

	alertConfig := alertingProvider.GetDefaultAlert()
	if alertConfig == nil {
		alertConfig = &alert.Alert{Type: alert.TypeEmail}
	}
	if !alertConfig.IsEnabled() {
		return
	}
	if alertConfig.GetSubject() != "" {
		subject = alertConfig.GetSubject()
	}

	if err := alertingProvider.Send(alertConfig, subject, body); err != nil {
		n.Logger.Error("Failed to send run notification", zap.Error(err))
		return
	}
	n.Logger.Info("Run notification sent", zap.String("subject", subject))
}
