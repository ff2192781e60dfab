package slack

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	slackapi "github.com/slack-go/slack"

	"figrelay/pkg/domain/interfaces"
	"figrelay/pkg/domain/model"
)

type client struct {
	api *slackapi.Client
}

// New creates a Slack-backed Messenger.
func New(token string) interfaces.Messenger {
	return &client{
		api: slackapi.New(token),
	}
}

// PostMessage delivers rendered content to a channel. The returned message
// timestamp is the platform message id used for later deletion.
func (c *client) PostMessage(ctx context.Context, channel string, content *model.MessageContent) (string, error) {
	blocks := toBlocks(content)

	opts := []slackapi.MsgOption{
		slackapi.MsgOptionText(content.Fallback, false),
	}
	if content.Color != "" {
		// Nest blocks in a colored attachment so the priority color bar
		// shows next to the message.
		opts = append(opts, slackapi.MsgOptionAttachments(slackapi.Attachment{
			Color:  content.Color,
			Blocks: slackapi.Blocks{BlockSet: blocks},
		}))
	} else {
		opts = append(opts, slackapi.MsgOptionBlocks(blocks...))
	}

	_, timestamp, err := c.api.PostMessageContext(ctx, channel, opts...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post slack message", goerr.V("channel", channel))
	}

	return timestamp, nil
}

// DeleteMessage removes a previously posted message.
func (c *client) DeleteMessage(ctx context.Context, channel, messageID string) error {
	if _, _, err := c.api.DeleteMessageContext(ctx, channel, messageID); err != nil {
		return goerr.Wrap(err, "failed to delete slack message",
			goerr.V("channel", channel),
			goerr.V("message_id", messageID),
		)
	}
	return nil
}

// toBlocks converts destination-agnostic content blocks to Block Kit blocks.
func toBlocks(content *model.MessageContent) []slackapi.Block {
	var blocks []slackapi.Block

	for _, block := range content.Blocks {
		switch block.Type {
		case model.BlockMentions:
			blocks = append(blocks, slackapi.NewSectionBlock(
				slackapi.NewTextBlockObject(slackapi.MarkdownType, strings.Join(block.Items, " "), false, false),
				nil, nil,
			))
		case model.BlockAttention:
			blocks = append(blocks, slackapi.NewSectionBlock(
				slackapi.NewTextBlockObject(slackapi.MarkdownType, "*"+block.Text+"*", false, false),
				nil, nil,
			))
		case model.BlockTitle:
			blocks = append(blocks, slackapi.NewHeaderBlock(
				slackapi.NewTextBlockObject(slackapi.PlainTextType, block.Text, true, false),
			))
		case model.BlockText:
			blocks = append(blocks, slackapi.NewSectionBlock(
				slackapi.NewTextBlockObject(slackapi.MarkdownType, "_"+block.Text+"_", false, false),
				nil, nil,
			))
		case model.BlockBullets:
			var sb strings.Builder
			for _, item := range block.Items {
				sb.WriteString("• ")
				sb.WriteString(item)
				sb.WriteString("\n")
			}
			blocks = append(blocks, slackapi.NewSectionBlock(
				slackapi.NewTextBlockObject(slackapi.MarkdownType, strings.TrimRight(sb.String(), "\n"), false, false),
				nil, nil,
			))
		case model.BlockFooter:
			blocks = append(blocks, slackapi.NewContextBlock("",
				slackapi.NewTextBlockObject(slackapi.MarkdownType, block.Text, false, false),
			))
		}
	}

	return blocks
}
