package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"figrelay/pkg/domain/interfaces"
	"figrelay/pkg/domain/model"
	"figrelay/pkg/domain/types"
)

// defaultRetention is how long sent-message records are kept for retraction.
const defaultRetention = 24 * time.Hour

var _ interfaces.NotifyUseCase = (*notifyUseCase)(nil)

type notifyUseCase struct {
	rules     *model.NotifyRules
	guard     *Guard
	evaluator *Evaluator
	formatter *Formatter
	messenger interfaces.Messenger
	registry  interfaces.MessageRegistry
	now       func() time.Time
	retention time.Duration
}

// NotifyOption is a functional option for the notify use case.
type NotifyOption func(*notifyUseCase)

// WithClock replaces the wall clock, used by tests.
func WithClock(now func() time.Time) NotifyOption {
	return func(uc *notifyUseCase) {
		uc.now = now
	}
}

// WithRetention sets the sent-message record retention.
func WithRetention(d time.Duration) NotifyOption {
	return func(uc *notifyUseCase) {
		uc.retention = d
	}
}

// NewNotify creates the publish-event processing core.
func NewNotify(
	rules *model.NotifyRules,
	guard *Guard,
	messenger interfaces.Messenger,
	registry interfaces.MessageRegistry,
	opts ...NotifyOption,
) *notifyUseCase {
	uc := &notifyUseCase{
		rules:     rules,
		guard:     guard,
		evaluator: NewEvaluator(rules.ThrottleKey, guard),
		formatter: NewFormatter(rules),
		messenger: messenger,
		registry:  registry,
		now:       time.Now,
		retention: defaultRetention,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// HandleEvent processes one publish event end to end. Every rejection path
// returns a structured result with a reason; only transport failures return
// an error.
func (uc *notifyUseCase) HandleEvent(ctx context.Context, event *model.RawEvent) (*model.EventResult, error) {
	logger := ctxlog.From(ctx)
	now := uc.now()

	adm := uc.guard.Admit(event.DestinationID, event.Description, event.TriggeredBy, now)
	result := &model.EventResult{
		Fingerprint: adm.Fingerprint,
		Admitted:    adm.Admitted,
		AdmitReason: adm.Reason,
	}
	if !adm.Admitted {
		logger.Info("Event rejected by guard",
			"event_id", event.ID,
			"destination", event.DestinationID,
			"reason", adm.Reason,
		)
		return result, nil
	}

	result.Commit = model.ParseCommitMessage(event.Description)

	policy, ok := uc.rules.Destination(event.DestinationID)
	if !ok {
		result.Decision = &model.NotificationDecision{ShouldSend: false, Reason: "not monitored"}
		logger.Info("Destination not monitored", "destination", event.DestinationID)
		return result, nil
	}

	result.Decision = uc.evaluator.Decide(result.Commit, policy, now)

	logger.Info("Evaluated publish event",
		"event_id", event.ID,
		"destination", event.DestinationID,
		"valid", result.Commit.Valid,
		"type", result.Commit.Type,
		"priority", result.Commit.Priority,
		"should_send", result.Decision.ShouldSend,
		"reason", result.Decision.Reason,
	)

	if !result.Decision.ShouldSend {
		return result, nil
	}

	result.Content = uc.formatter.Render(result.Commit, policy, event.TriggeredBy, event.DestinationID)

	channel := uc.rules.ChannelFor(policy)
	messageID, err := uc.messenger.PostMessage(ctx, channel, result.Content)
	if err != nil {
		return result, goerr.Wrap(err, "failed to post notification",
			goerr.T(types.TagTransport),
			goerr.V("channel", channel),
			goerr.V("fingerprint", adm.Fingerprint),
		)
	}

	uc.guard.MarkNotified(policy.ID, now)
	result.Sent = true
	result.Channel = channel
	result.MessageID = messageID

	rec := &model.SentMessageRecord{
		Fingerprint:   adm.Fingerprint,
		Channel:       channel,
		MessageID:     messageID,
		SentAt:        now,
		DestinationID: event.DestinationID,
		CommitType:    result.Commit.Type,
	}
	if err := uc.registry.Record(ctx, rec); err != nil {
		// The notification is already delivered; losing the record only
		// disables later retraction.
		logger.Warn("Failed to record sent message",
			"error", err,
			"fingerprint", adm.Fingerprint,
		)
	}

	logger.Info("Notification sent",
		"channel", channel,
		"message_id", messageID,
		"fingerprint", adm.Fingerprint,
	)

	return result, nil
}

// Retract deletes the platform message for a fingerprint. The record is
// removed only after the platform confirms deletion; a failed delete keeps it
// so retraction can be retried by the caller.
func (uc *notifyUseCase) Retract(ctx context.Context, fingerprint string) error {
	rec, err := uc.registry.Get(ctx, fingerprint)
	if err != nil {
		return err
	}

	if err := uc.messenger.DeleteMessage(ctx, rec.Channel, rec.MessageID); err != nil {
		return goerr.Wrap(err, "failed to delete notification",
			goerr.T(types.TagTransport),
			goerr.V("channel", rec.Channel),
			goerr.V("message_id", rec.MessageID),
		)
	}

	if err := uc.registry.Delete(ctx, fingerprint); err != nil {
		return goerr.Wrap(err, "failed to remove sent message record", goerr.V("fingerprint", fingerprint))
	}

	ctxlog.From(ctx).Info("Notification retracted",
		"fingerprint", fingerprint,
		"channel", rec.Channel,
		"message_id", rec.MessageID,
	)

	return nil
}

// Inspect returns the record for a fingerprint.
func (uc *notifyUseCase) Inspect(ctx context.Context, fingerprint string) (*model.SentMessageRecord, error) {
	return uc.registry.Get(ctx, fingerprint)
}

// ListMessages returns all retained records.
func (uc *notifyUseCase) ListMessages(ctx context.Context) ([]*model.SentMessageRecord, error) {
	return uc.registry.List(ctx)
}

// Cleanup prunes expired guard state and sent-message records. Runs on its
// own schedule, independent of request handling.
func (uc *notifyUseCase) Cleanup(ctx context.Context) error {
	now := uc.now()
	uc.guard.Prune(now)

	pruned, err := uc.registry.PruneOlderThan(ctx, now.Add(-uc.retention))
	if err != nil {
		return goerr.Wrap(err, "failed to prune sent message records")
	}
	if pruned > 0 {
		ctxlog.From(ctx).Debug("Pruned sent message records", "count", pruned)
	}
	return nil
}
