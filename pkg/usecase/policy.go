package usecase

import (
	"fmt"
	"time"

	"figrelay/pkg/domain/model"
)

// Evaluator decides whether a parsed commit warrants a notification for a
// destination. Precedence, first match wins: invalid, forced, never-notify,
// always-notify (throttled), default-off type, throttle.
type Evaluator struct {
	throttleKey model.ThrottleKey
	guard       *Guard
}

// NewEvaluator creates an Evaluator backed by the given guard state.
func NewEvaluator(key model.ThrottleKey, guard *Guard) *Evaluator {
	if key == "" {
		key = model.ThrottleByPriority
	}
	return &Evaluator{throttleKey: key, guard: guard}
}

// Decide evaluates the commit against the destination policy and current
// throttle state. It never mutates guard state; marking a notification as
// sent is the caller's job after a successful delivery.
func (e *Evaluator) Decide(commit *model.ParsedCommit, policy *model.DestinationPolicy, now time.Time) *model.NotificationDecision {
	if !commit.Valid {
		return &model.NotificationDecision{ShouldSend: false, Reason: commit.InvalidReason}
	}

	if commit.Forced {
		return &model.NotificationDecision{ShouldSend: true, Reason: "forced"}
	}

	if policy.NeverNotifies(commit.Type) {
		return &model.NotificationDecision{ShouldSend: false, Reason: "never-notify type"}
	}

	if policy.AlwaysNotifies(commit.Type) {
		if reason, throttled := e.throttleReason(commit, policy, now); throttled {
			return &model.NotificationDecision{ShouldSend: false, Reason: reason}
		}
		return &model.NotificationDecision{ShouldSend: true, Reason: "always-notify type"}
	}

	if desc, ok := model.DescriptorFor(commit.Type); ok && !desc.DefaultNotify {
		return &model.NotificationDecision{ShouldSend: false, Reason: "default non-notifying type"}
	}

	if reason, throttled := e.throttleReason(commit, policy, now); throttled {
		return &model.NotificationDecision{ShouldSend: false, Reason: reason}
	}
	return &model.NotificationDecision{ShouldSend: true, Reason: "criteria met"}
}

// throttleReason checks the elapsed time since the last notification of the
// destination against the policy window for the throttle key's priority.
func (e *Evaluator) throttleReason(commit *model.ParsedCommit, policy *model.DestinationPolicy, now time.Time) (string, bool) {
	last, ok := e.guard.LastNotified(policy.ID)
	if !ok {
		return "", false
	}

	priority := commit.Priority
	if e.throttleKey == model.ThrottleByType {
		if desc, ok := model.DescriptorFor(commit.Type); ok {
			priority = desc.Priority
		}
	}

	window := policy.ThrottleWindow(priority)
	if window <= 0 {
		return "", false
	}

	elapsed := now.Sub(last)
	if elapsed >= window {
		return "", false
	}

	remaining := window - elapsed
	minutes := (remaining.Milliseconds() + 59999) / 60000
	return fmt.Sprintf("throttled, next notification in %d minute(s)", minutes), true
}
