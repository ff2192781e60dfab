package interfaces

import (
	"context"

	"figrelay/pkg/domain/model"
)

// NotifyUseCase defines the publish-event processing core exposed to the
// transport layer.
type NotifyUseCase interface {
	// HandleEvent runs one event through guard, parser, policy evaluation
	// and, when approved, formatting and delivery.
	HandleEvent(ctx context.Context, event *model.RawEvent) (*model.EventResult, error)

	// Retract deletes the platform message recorded for a fingerprint and
	// removes the record only on confirmed deletion.
	Retract(ctx context.Context, fingerprint string) error

	// Inspect returns the sent-message record for a fingerprint.
	Inspect(ctx context.Context, fingerprint string) (*model.SentMessageRecord, error)

	// ListMessages returns all retained sent-message records.
	ListMessages(ctx context.Context) ([]*model.SentMessageRecord, error)

	// Cleanup prunes expired guard state and sent-message records.
	Cleanup(ctx context.Context) error
}
