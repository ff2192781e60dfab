package model

import "time"

// RawEvent represents a single inbound publish webhook call. Immutable,
// created once per delivery.
type RawEvent struct {
	ID               string    // Assigned per delivery (Figma sends no delivery id)
	EventType        string    // e.g. LIBRARY_PUBLISH
	DestinationID    string    // File key of the published library
	DestinationLabel string    // Display name of the file
	Description      string    // Human-written publish description
	TriggeredBy      string    // Handle of the publishing user
	ReceivedAt       time.Time // Time when the event was received
}

// EventResult is the structured outcome of processing one RawEvent. Every
// path through the pipeline produces one; nothing is fatal.
type EventResult struct {
	Fingerprint string                `json:"fingerprint"`
	Admitted    bool                  `json:"admitted"`
	AdmitReason string                `json:"admit_reason,omitempty"`
	Commit      *ParsedCommit         `json:"commit,omitempty"`
	Decision    *NotificationDecision `json:"decision,omitempty"`
	Content     *MessageContent       `json:"content,omitempty"`
	Sent        bool                  `json:"sent"`
	Channel     string                `json:"channel,omitempty"`
	MessageID   string                `json:"message_id,omitempty"`
}

// Reason returns the human-readable reason for the terminal state of the result.
func (r *EventResult) Reason() string {
	if !r.Admitted {
		return r.AdmitReason
	}
	if r.Decision != nil {
		return r.Decision.Reason
	}
	return ""
}
