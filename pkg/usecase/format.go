package usecase

import (
	"fmt"
	"strings"

	"figrelay/pkg/domain/model"
)

// Attachment colors by priority.
const (
	colorCritical = "#E01E5A"
	colorHigh     = "#ECB22E"
	colorNormal   = "#2EB67D"
)

// Formatter renders a parsed commit into destination-agnostic message
// content. Pure: no side effects, no knowledge of the send transport.
type Formatter struct {
	rules *model.NotifyRules
}

// NewFormatter creates a Formatter using the rule set's mention groups.
func NewFormatter(rules *model.NotifyRules) *Formatter {
	return &Formatter{rules: rules}
}

// Render builds the notification content for an approved commit. Block order:
// mentions, attention, title, body, footer.
func (f *Formatter) Render(commit *model.ParsedCommit, policy *model.DestinationPolicy, publishedBy, fileKey string) *model.MessageContent {
	desc, _ := model.DescriptorFor(commit.Type)

	content := &model.MessageContent{
		Title:    f.title(commit, policy, desc),
		Fallback: fmt.Sprintf("%s in %s: %s", desc.Label, policy.Name, commit.Message),
		Color:    priorityColor(commit.Priority),
	}

	if len(commit.Mentions) > 0 {
		var resolved []string
		for _, token := range commit.Mentions {
			resolved = append(resolved, f.rules.ResolveMention(token))
		}
		content.Blocks = append(content.Blocks, model.ContentBlock{Type: model.BlockMentions, Items: resolved})
	}

	if commit.Type == model.TypeBreaking {
		content.Blocks = append(content.Blocks, model.ContentBlock{
			Type: model.BlockAttention,
			Text: "🚨 Breaking change: review before pulling library updates",
		})
	} else if commit.Priority == model.PriorityHigh {
		content.Blocks = append(content.Blocks, model.ContentBlock{
			Type: model.BlockAttention,
			Text: "⚠️ High priority update",
		})
	}

	content.Blocks = append(content.Blocks, model.ContentBlock{Type: model.BlockTitle, Text: content.Title})

	if len(commit.BulletPoints) > 0 {
		content.Blocks = append(content.Blocks, model.ContentBlock{Type: model.BlockBullets, Items: commit.BulletPoints})
	} else if commit.Message != "" {
		content.Blocks = append(content.Blocks, model.ContentBlock{Type: model.BlockText, Text: commit.Message})
	}

	content.Blocks = append(content.Blocks, model.ContentBlock{Type: model.BlockFooter, Text: f.footer(commit, publishedBy, fileKey)})

	return content
}

// title combines the type label with the scope or component list and the
// destination display name.
func (f *Formatter) title(commit *model.ParsedCommit, policy *model.DestinationPolicy, desc model.TypeDescriptor) string {
	heading := fmt.Sprintf("%s %s", desc.Emoji, desc.Label)
	switch {
	case commit.Scope != "":
		heading = fmt.Sprintf("%s (%s)", heading, commit.Scope)
	case len(commit.Components) > 0:
		heading = fmt.Sprintf("%s: %s", heading, strings.Join(commit.Components, ", "))
	}
	return fmt.Sprintf("%s · %s", heading, policy.Name)
}

func (f *Formatter) footer(commit *model.ParsedCommit, publishedBy, fileKey string) string {
	footer := fmt.Sprintf("Published by %s · https://www.figma.com/file/%s", publishedBy, fileKey)
	if commit.DevComplete {
		footer += " · ✅ Ready for development"
	}
	return footer
}

func priorityColor(p model.Priority) string {
	switch p {
	case model.PriorityCritical:
		return colorCritical
	case model.PriorityHigh:
		return colorHigh
	default:
		return colorNormal
	}
}
