package model

import "time"

// BlockType identifies a destination-agnostic content block kind.
type BlockType string

const (
	BlockMentions  BlockType = "mentions"
	BlockAttention BlockType = "attention"
	BlockTitle     BlockType = "title"
	BlockText      BlockType = "text"
	BlockBullets   BlockType = "bullets"
	BlockFooter    BlockType = "footer"
)

// ContentBlock is one ordered element of a rendered notification.
type ContentBlock struct {
	Type  BlockType `json:"type"`
	Text  string    `json:"text,omitempty"`
	Items []string  `json:"items,omitempty"`
}

// MessageContent is the rendered notification, independent of the send
// transport. Blocks are ordered top to bottom.
type MessageContent struct {
	Title    string         `json:"title"`
	Blocks   []ContentBlock `json:"blocks"`
	Fallback string         `json:"fallback"`
	Color    string         `json:"color,omitempty"`
}

// SentMessageRecord records a delivered notification keyed by the event
// fingerprint so it can be retracted later.
type SentMessageRecord struct {
	Fingerprint   string     `json:"fingerprint"`
	Channel       string     `json:"channel"`
	MessageID     string     `json:"message_id"`
	SentAt        time.Time  `json:"sent_at"`
	DestinationID string     `json:"destination_id"`
	CommitType    CommitType `json:"commit_type"`
}
