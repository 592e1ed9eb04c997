package slack

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

const (
	// maxSectionBytes is the Slack limit for a section block text
	maxSectionBytes = 3000
	// maxFallbackBytes bounds the notification fallback text
	maxFallbackBytes = 4000
	// maxBlocks is the Slack limit of blocks per message
	maxBlocks = 50
)

// client implements Service interface
type client struct {
	api *slack.Client
}

// Option is a functional option for client configuration
type Option func(*clientConfig)

type clientConfig struct {
	apiURL string
}

// WithAPIURL points the client at another Slack API root
func WithAPIURL(url string) Option {
	return func(c *clientConfig) {
		c.apiURL = url
	}
}

// New creates a new Slack service with the provided bot token
func New(token string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	var cfg clientConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var slackOpts []slack.Option
	if cfg.apiURL != "" {
		slackOpts = append(slackOpts, slack.OptionAPIURL(cfg.apiURL))
	}

	return &client{
		api: slack.New(token, slackOpts...),
	}, nil
}

// PostMessage posts text to a channel and returns the message timestamp
func (c *client) PostMessage(ctx context.Context, channelID, text string) (string, error) {
	if channelID == "" {
		return "", goerr.New("slack channel is required")
	}

	var blocks []slack.Block
	for _, chunk := range splitSections(text, maxSectionBytes) {
		if len(blocks) == maxBlocks {
			break
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, chunk, false, false), nil, nil))
	}

	_, ts, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(truncateToMaxBytes(text, maxFallbackBytes), false),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post message", goerr.V("channel_id", channelID))
	}
	return ts, nil
}

// splitSections cuts text on line boundaries into chunks of at most maxBytes
func splitSections(text string, maxBytes int) []string {
	var chunks []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
	}

	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		for len(line) > maxBytes {
			flush()
			head := truncateToMaxBytes(line, maxBytes)
			chunks = append(chunks, head)
			line = line[len(head):]
		}
		if cur.Len() > 0 && cur.Len()+1+len(line) > maxBytes {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteByte('\n')
		}
		cur.WriteString(line)
	}
	flush()

	if len(chunks) == 0 {
		return []string{" "}
	}
	return chunks
}

// truncateToMaxBytes cuts s to at most maxBytes without splitting a rune
func truncateToMaxBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
