package usecase_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"figrelay/pkg/domain/model"
	"figrelay/pkg/usecase"
)

func testPolicy() *model.DestinationPolicy {
	return &model.DestinationPolicy{
		ID:           "file-1",
		Name:         "Design System",
		Channel:      "C0123456789",
		AlwaysNotify: []model.CommitType{model.TypeFeat, model.TypeFix, model.TypeBreaking},
		NeverNotify:  []model.CommitType{model.TypeChore},
		ThrottleMinutes: map[model.Priority]int{
			model.PriorityCritical: 0,
			model.PriorityHigh:     15,
			model.PriorityNormal:   60,
		},
	}
}

func TestEvaluator_Precedence(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		text       string
		shouldSend bool
		reason     string
	}{
		{
			name:       "invalid commit",
			text:       "Update the header",
			shouldSend: false,
			reason:     "not a valid semantic commit format",
		},
		{
			name:       "forced beats never-notify",
			text:       "chore!: rotate tokens",
			shouldSend: true,
			reason:     "forced",
		},
		{
			name:       "never-notify type",
			text:       "chore: bump deps",
			shouldSend: false,
			reason:     "never-notify type",
		},
		{
			name:       "always-notify type",
			text:       "feat(buttons): add hover states",
			shouldSend: true,
			reason:     "always-notify type",
		},
		{
			name:       "default non-notifying type",
			text:       "docs: typo in guidelines",
			shouldSend: false,
			reason:     "default non-notifying type",
		},
		{
			name:       "default-notifying type passes throttle",
			text:       "update: refreshed shadows",
			shouldSend: true,
			reason:     "criteria met",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := usecase.NewEvaluator(model.ThrottleByPriority, usecase.NewGuard())
			commit := model.ParseCommitMessage(tt.text)

			decision := eval.Decide(commit, testPolicy(), now)
			gt.Equal(t, decision.ShouldSend, tt.shouldSend)
			gt.Equal(t, decision.Reason, tt.reason)
		})
	}
}

func TestEvaluator_Throttle(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	t.Run("normal commit throttled with remaining minutes", func(t *testing.T) {
		guard := usecase.NewGuard()
		guard.MarkNotified("file-1", now.Add(-10*time.Minute))

		eval := usecase.NewEvaluator(model.ThrottleByPriority, guard)
		commit := model.ParseCommitMessage("update: refreshed shadows")

		decision := eval.Decide(commit, testPolicy(), now)
		gt.False(t, decision.ShouldSend)
		gt.Equal(t, decision.Reason, "throttled, next notification in 50 minute(s)")
	})

	t.Run("remaining minutes round up", func(t *testing.T) {
		guard := usecase.NewGuard()
		guard.MarkNotified("file-1", now.Add(-59*time.Minute).Add(-30*time.Second))

		eval := usecase.NewEvaluator(model.ThrottleByPriority, guard)
		commit := model.ParseCommitMessage("update: refreshed shadows")

		decision := eval.Decide(commit, testPolicy(), now)
		gt.False(t, decision.ShouldSend)
		gt.Equal(t, decision.Reason, "throttled, next notification in 1 minute(s)")
	})

	t.Run("breaking commit never throttled with zero window", func(t *testing.T) {
		guard := usecase.NewGuard()
		guard.MarkNotified("file-1", now.Add(-time.Second))

		eval := usecase.NewEvaluator(model.ThrottleByPriority, guard)
		commit := model.ParseCommitMessage("breaking: grid rewritten")

		decision := eval.Decide(commit, testPolicy(), now)
		gt.True(t, decision.ShouldSend)
		gt.Equal(t, decision.Reason, "always-notify type")
	})

	t.Run("elapsed window passes", func(t *testing.T) {
		guard := usecase.NewGuard()
		guard.MarkNotified("file-1", now.Add(-2*time.Hour))

		eval := usecase.NewEvaluator(model.ThrottleByPriority, guard)
		commit := model.ParseCommitMessage("update: refreshed shadows")

		decision := eval.Decide(commit, testPolicy(), now)
		gt.True(t, decision.ShouldSend)
	})

	t.Run("high priority marker uses the high window", func(t *testing.T) {
		guard := usecase.NewGuard()
		guard.MarkNotified("file-1", now.Add(-20*time.Minute))

		eval := usecase.NewEvaluator(model.ThrottleByPriority, guard)
		commit := model.ParseCommitMessage("update: new tokens [priority]")

		// 20 minutes elapsed beats the 15 minute high window
		decision := eval.Decide(commit, testPolicy(), now)
		gt.True(t, decision.ShouldSend)
	})

	t.Run("type key ignores the priority marker", func(t *testing.T) {
		guard := usecase.NewGuard()
		guard.MarkNotified("file-1", now.Add(-20*time.Minute))

		eval := usecase.NewEvaluator(model.ThrottleByType, guard)
		commit := model.ParseCommitMessage("update: new tokens [priority]")

		// The update type's fixed priority is normal: 60 minute window
		decision := eval.Decide(commit, testPolicy(), now)
		gt.False(t, decision.ShouldSend)
	})
}
