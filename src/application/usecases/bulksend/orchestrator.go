package bulksend

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	uuid "github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// MediaJanitor removes a job's transient media after a grace period.
type MediaJanitor interface {
	ScheduleRemoval(path string, after time.Duration)
}

// IBulkSendOrchestrator owns the bulk send loop. At most one job may
// be running at any time; Start rejects overlapping requests.
type IBulkSendOrchestrator interface {
	Start(job *campaign.SendJob) (string, error)
	IsRunning() bool
}

type Orchestrator struct {
	channel    campaign.DeliveryChannel
	audit      campaign.AuditSink
	events     campaign.EventPublisher
	history    campaign.HistoryRecorder
	normalizer *NumberNormalizer
	janitor    MediaJanitor
	mediaGrace time.Duration
	Logger     *logger.Logger
	running    atomic.Bool
	mu         sync.Mutex
	done       chan struct{}
}

// NewOrchestrator creates the orchestrator. history and janitor may be
// nil when no database or transient storage is configured.
func NewOrchestrator(
	channel campaign.DeliveryChannel,
	audit campaign.AuditSink,
	events campaign.EventPublisher,
	history campaign.HistoryRecorder,
	normalizer *NumberNormalizer,
	janitor MediaJanitor,
	mediaGrace time.Duration,
	loggerInstance *logger.Logger,
) *Orchestrator {
	if mediaGrace <= 0 {
		mediaGrace = time.Minute
	}
	return &Orchestrator{
		channel:    channel,
		audit:      audit,
		events:     events,
		history:    history,
		normalizer: normalizer,
		janitor:    janitor,
		mediaGrace: mediaGrace,
		Logger:     loggerInstance,
	}
}

func (o *Orchestrator) IsRunning() bool {
	return o.running.Load()
}

// Start validates the job, claims the single-flight slot, and kicks
// off the run on its own goroutine. It returns the run ID immediately;
// results reach callers only through the event channel.
func (o *Orchestrator) Start(job *campaign.SendJob) (string, error) {
	if job == nil || len(job.Contacts) == 0 {
		return "", campaign.ErrNoContacts
	}
	if strings.TrimSpace(job.MessageTemplate) == "" {
		return "", campaign.ErrEmptyMessage
	}
	if !o.channel.IsReady() {
		return "", campaign.ErrChannelNotReady
	}

	// Compare-and-set guards against two near-simultaneous start
	// requests: exactly one wins the slot.
	if !o.running.CompareAndSwap(false, true) {
		return "", campaign.ErrJobInProgress
	}

	if job.RunID == "" {
		u, err := uuid.NewV4()
		if err != nil {
			o.running.Store(false)
			return "", err
		}
		job.RunID = u.String()
	}

	done := make(chan struct{})
	o.mu.Lock()
	o.done = done
	o.mu.Unlock()
	go o.run(job, done)

	o.Logger.Info("Bulk send started",
		zap.String("runID", job.RunID),
		zap.Int("contacts", len(job.Contacts)),
		zap.Duration("delay", job.Delay),
		zap.Bool("hasMedia", job.Media != nil))
	return job.RunID, nil
}

// Wait blocks until the current run finishes. Used by tests and by
// graceful shutdown; returns immediately when nothing is running.
func (o *Orchestrator) Wait() {
	o.mu.Lock()
	done := o.done
	o.mu.Unlock()
	if done == nil {
		return
	}
	<-done
}

func (o *Orchestrator) run(job *campaign.SendJob, done chan struct{}) {
	defer close(done)
	defer o.running.Store(false)

	if job.Media != nil && o.janitor != nil {
		defer o.janitor.ScheduleRemoval(job.Media.Path, o.mediaGrace)
	}

	summary := campaign.RunSummary{
		RunID:  job.RunID,
		Total:  len(job.Contacts),
		Errors: []campaign.DeliveryError{},
	}

	for i, contact := range job.Contacts {
		// A channel that dropped mid-run is unrecoverable: abort and
		// leave the remaining contacts unprocessed.
		if !o.channel.IsReady() {
			o.Logger.Error("Channel became unready mid-run, aborting",
				zap.String("runID", job.RunID),
				zap.Int("processed", i))
			o.events.Publish(campaign.Event{
				Name:    campaign.EventBulkError,
				Payload: campaign.ErrChannelNotReady.Error(),
			})
			return
		}

		outcome := o.deliver(job, i, contact)

		if outcome.Status == campaign.DeliveryStatusSent {
			summary.Sent++
		} else {
			summary.Failed++
			summary.Errors = append(summary.Errors, campaign.DeliveryError{
				Contact: contact,
				Error:   outcome.Error,
			})
		}

		o.recordOutcome(job.RunID, outcome)

		o.events.Publish(campaign.Event{
			Name: campaign.EventProgress,
			Payload: campaign.ProgressPayload{
				RunID:   job.RunID,
				Current: i + 1,
				Total:   summary.Total,
				Contact: contact,
				Status:  outcome.Status,
				Error:   outcome.Error,
			},
		})

		// Pacing between sends; skipped after the last contact.
		if i < len(job.Contacts)-1 && job.Delay > 0 {
			time.Sleep(job.Delay)
		}
	}

	o.Logger.Info("Bulk send completed",
		zap.String("runID", job.RunID),
		zap.Int("sent", summary.Sent),
		zap.Int("failed", summary.Failed))
	o.events.Publish(campaign.Event{Name: campaign.EventBulkComplete, Payload: summary})
}

// deliver renders, normalizes and attempts delivery for one contact.
// Per-contact failures never abort the run.
func (o *Orchestrator) deliver(job *campaign.SendJob, index int, contact campaign.Contact) campaign.DeliveryOutcome {
	rendered := RenderTemplate(job.MessageTemplate, contact)
	address := o.normalizer.Normalize(contact.Number)

	outcome := campaign.DeliveryOutcome{
		Contact:         contact,
		RenderedMessage: rendered,
		SequenceIndex:   index,
		Timestamp:       time.Now(),
	}

	recipient, err := o.channel.ResolveRecipient(address)
	if err != nil {
		// "not found" and lookup failures alike count as failed
		// without a delivery attempt.
		outcome.Status = campaign.DeliveryStatusFailed
		outcome.Error = err.Error()
		return outcome
	}

	if job.Media != nil {
		err = o.channel.SendMedia(recipient, rendered, job.Media)
	} else {
		err = o.channel.SendText(recipient, rendered)
	}

	if err != nil {
		outcome.Status = campaign.DeliveryStatusFailed
		outcome.Error = err.Error()
		o.Logger.Warn("Delivery failed",
			zap.String("runID", job.RunID),
			zap.String("number", contact.Number),
			zap.Error(err))
		return outcome
	}

	outcome.Status = campaign.DeliveryStatusSent
	return outcome
}

// recordOutcome persists the outcome to the audit log and the history
// store. Persistence failures are logged and swallowed: progress
// reporting takes priority over audit durability.
func (o *Orchestrator) recordOutcome(runID string, outcome campaign.DeliveryOutcome) {
	entry := campaign.AuditLogEntry{
		Timestamp: outcome.Timestamp,
		Contact:   outcome.Contact,
		Status:    outcome.Status,
		Message:   outcome.RenderedMessage,
		Error:     outcome.Error,
	}

	if err := o.audit.Append(entry); err != nil {
		o.Logger.Error("Failed to append audit log entry",
			zap.String("runID", runID),
			zap.Error(err))
	} else {
		o.events.Publish(campaign.Event{Name: campaign.EventMessageLog, Payload: entry})
	}

	if o.history != nil {
		if err := o.history.Record(runID, outcome); err != nil {
			o.Logger.Error("Failed to record delivery history",
				zap.String("runID", runID),
				zap.Error(err))
		}
	}
}
