package campaign

import (
	"errors"
	"time"
)

// DefaultContactName is used when an uploaded row carries a phone
// number but no name column.
const DefaultContactName = "Contact"

// Contact represents a single recipient extracted from an uploaded
// contact file. Number is the raw phone string as found in the file.
type Contact struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// Fields exposes the contact as a field map for template rendering.
func (c Contact) Fields() map[string]string {
	return map[string]string{
		"name":   c.Name,
		"number": c.Number,
	}
}

// Media is an optional attachment carried by a SendJob, backed by
// transient storage.
type Media struct {
	Path     string
	MimeType string
	FileName string
}

// SendJob is the unit of work for one bulk-send invocation. It is
// immutable for the duration of the run; at most one job may be
// running at a time.
type SendJob struct {
	RunID           string
	Contacts        []Contact
	MessageTemplate string
	Media           *Media
	Delay           time.Duration
}

type DeliveryStatus string

const (
	DeliveryStatusSent   DeliveryStatus = "sent"
	DeliveryStatusFailed DeliveryStatus = "failed"
)

// DeliveryOutcome is the per-contact result of one delivery attempt.
type DeliveryOutcome struct {
	Contact         Contact        `json:"contact"`
	Status          DeliveryStatus `json:"status"`
	RenderedMessage string         `json:"renderedMessage"`
	Error           string         `json:"error,omitempty"`
	SequenceIndex   int            `json:"sequenceIndex"`
	Timestamp       time.Time      `json:"timestamp"`
}

// DeliveryError pairs a contact with the reason its delivery failed.
type DeliveryError struct {
	Contact Contact `json:"contact"`
	Error   string  `json:"error"`
}

// RunSummary aggregates a completed run. Sent+Failed == Total.
type RunSummary struct {
	RunID  string          `json:"runId"`
	Total  int             `json:"total"`
	Sent   int             `json:"sent"`
	Failed int             `json:"failed"`
	Errors []DeliveryError `json:"errors"`
}

// AuditLogEntry is the durable record of one delivery attempt,
// appended to the current day's partition.
type AuditLogEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Contact   Contact        `json:"contact"`
	Status    DeliveryStatus `json:"status"`
	Message   string         `json:"message"`
	Error     string         `json:"error,omitempty"`
}

var (
	// ErrJobInProgress is returned when a send is requested while a
	// job is already running. The in-flight job is not affected.
	ErrJobInProgress = errors.New("a bulk send job is already in progress")

	// ErrChannelNotReady is returned when the messaging platform
	// session is not authenticated yet.
	ErrChannelNotReady = errors.New("messaging channel is not ready")

	// ErrNoContacts is returned for a job without any contacts.
	ErrNoContacts = errors.New("at least one contact is required")

	// ErrEmptyMessage is returned for a job with an empty template.
	ErrEmptyMessage = errors.New("message template must not be empty")

	// ErrUnsupportedFormat is returned when an uploaded contact file
	// is neither csv nor xlsx.
	ErrUnsupportedFormat = errors.New("unsupported contact file format")

	// ErrRecipientNotFound is reported by the delivery channel when a
	// normalized address has no account on the platform.
	ErrRecipientNotFound = errors.New("number not found on WhatsApp")
)

// DeliveryChannel abstracts the messaging-platform client: readiness,
// recipient lookup and the actual send operations.
type DeliveryChannel interface {
	IsReady() bool
	ResolveRecipient(address string) (string, error)
	SendText(recipient string, message string) error
	SendMedia(recipient string, message string, media *Media) error
}

// AuditSink appends delivery-attempt records to the durable,
// date-partitioned audit log.
type AuditSink interface {
	Append(entry AuditLogEntry) error
	Today() ([]AuditLogEntry, error)
}

// EventPublisher fans orchestrator and channel events out to
// connected dashboard sessions.
type EventPublisher interface {
	Publish(event Event)
}

// HistoryRecorder persists delivery outcomes to long-term storage.
// Implementations must not block the send loop on failure.
type HistoryRecorder interface {
	Record(runID string, outcome DeliveryOutcome) error
}
