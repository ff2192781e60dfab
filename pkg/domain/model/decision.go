package model

// NotificationDecision is the outcome of evaluating a parsed commit against a
// destination policy. Ephemeral, produced per evaluation.
type NotificationDecision struct {
	ShouldSend bool   `json:"should_send"`
	Reason     string `json:"reason"`
}
