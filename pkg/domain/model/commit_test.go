package model_test

import (
	"reflect"
	"testing"

	"figrelay/pkg/domain/model"
)

func TestParseCommitMessage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *model.ParsedCommit
	}{
		{
			name: "feat with scope",
			text: "feat(buttons): add hover states",
			want: &model.ParsedCommit{
				Valid:    true,
				Type:     model.TypeFeat,
				Scope:    "buttons",
				Priority: model.PriorityNormal,
				Message:  "add hover states",
			},
		},
		{
			name: "chore without scope",
			text: "chore: bump deps",
			want: &model.ParsedCommit{
				Valid:    true,
				Type:     model.TypeChore,
				Priority: model.PriorityNormal,
				Message:  "bump deps",
			},
		},
		{
			name: "forced never-notify type",
			text: "chore!: rotate tokens",
			want: &model.ParsedCommit{
				Valid:    true,
				Type:     model.TypeChore,
				Forced:   true,
				Priority: model.PriorityNormal,
				Message:  "rotate tokens",
			},
		},
		{
			name: "breaking is critical",
			text: "breaking(tokens): color variables renamed",
			want: &model.ParsedCommit{
				Valid:    true,
				Type:     model.TypeBreaking,
				Scope:    "tokens",
				Priority: model.PriorityCritical,
				Message:  "color variables renamed",
			},
		},
		{
			name: "uppercase type is normalized",
			text: "FIX: misaligned icon grid",
			want: &model.ParsedCommit{
				Valid:    true,
				Type:     model.TypeFix,
				Priority: model.PriorityNormal,
				Message:  "misaligned icon grid",
			},
		},
		{
			name: "priority marker",
			text: "fix: dropdown z-index [priority]",
			want: &model.ParsedCommit{
				Valid:    true,
				Type:     model.TypeFix,
				Priority: model.PriorityHigh,
				Message:  "dropdown z-index [priority]",
			},
		},
		{
			name: "dev-ready marker and mentions",
			text: "feat: new empty states [dev-ready] [@design-team] [@Anna] [@design-team]",
			want: &model.ParsedCommit{
				Valid:       true,
				Type:        model.TypeFeat,
				Priority:    model.PriorityNormal,
				Message:     "new empty states [dev-ready] [@design-team] [@Anna] [@design-team]",
				DevComplete: true,
				Mentions:    []string{"design-team", "anna"},
			},
		},
		{
			name: "component list with bullets",
			text: "update: Button, Card, Modal\n- darker focus ring\n• new shadow tokens\n\n- padding fixes",
			want: &model.ParsedCommit{
				Valid:        true,
				Type:         model.TypeUpdate,
				Priority:     model.PriorityNormal,
				Components:   []string{"Button", "Card", "Modal"},
				BulletPoints: []string{"darker focus ring", "new shadow tokens", "padding fixes"},
				Message:      "darker focus ring",
			},
		},
		{
			name: "component list without bullets synthesizes message",
			text: "update: Button, Card",
			want: &model.ParsedCommit{
				Valid:      true,
				Type:       model.TypeUpdate,
				Priority:   model.PriorityNormal,
				Components: []string{"Button", "Card"},
				Message:    "Updated Button, Card",
			},
		},
		{
			name: "capitalized sentence without comma is a plain message",
			text: "update: Button styling polished",
			want: &model.ParsedCommit{
				Valid:    true,
				Type:     model.TypeUpdate,
				Priority: model.PriorityNormal,
				Message:  "Button styling polished",
			},
		},
		{
			name: "multiple colons split on the first",
			text: "docs: usage: see the handbook",
			want: &model.ParsedCommit{
				Valid:    true,
				Type:     model.TypeDocs,
				Priority: model.PriorityNormal,
				Message:  "usage: see the handbook",
			},
		},
		{
			name: "no type prefix",
			text: "Update the header",
			want: &model.ParsedCommit{
				Valid:         false,
				InvalidReason: "not a valid semantic commit format",
			},
		},
		{
			name: "unknown type",
			text: "wip: half-finished cards",
			want: &model.ParsedCommit{
				Valid:         false,
				InvalidReason: "not a valid semantic commit format",
			},
		},
		{
			name: "empty description",
			text: "   ",
			want: &model.ParsedCommit{
				Valid:         false,
				InvalidReason: "empty description",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.ParseCommitMessage(tt.text)

			tt.want.RawText = tt.text
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCommitMessage() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseCommitMessage_Idempotent(t *testing.T) {
	text := "feat(nav): sticky header [priority] [@eng]"
	first := model.ParseCommitMessage(text)
	second := model.ParseCommitMessage(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-parsing the same text diverged: %+v vs %+v", first, second)
	}
}

func TestDescriptorFor(t *testing.T) {
	desc, ok := model.DescriptorFor(model.TypeBreaking)
	if !ok {
		t.Fatal("descriptor for breaking should exist")
	}
	if !desc.DefaultNotify {
		t.Error("breaking should notify by default")
	}
	if desc.Priority != model.PriorityCritical {
		t.Errorf("breaking fixed priority = %v, want critical", desc.Priority)
	}

	if _, ok := model.DescriptorFor(model.CommitType("wip")); ok {
		t.Error("descriptor for unknown type should not exist")
	}
}
