package interfaces

import (
	"context"

	"figrelay/pkg/domain/model"
)

// Messenger defines the send/delete capability of the messaging platform.
type Messenger interface {
	// PostMessage delivers rendered content to a channel and returns the
	// platform message id.
	PostMessage(ctx context.Context, channel string, content *model.MessageContent) (string, error)

	// DeleteMessage removes a previously posted message.
	DeleteMessage(ctx context.Context, channel, messageID string) error
}
