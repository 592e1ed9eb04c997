package slack

import (
	"context"
)

// Service delivers status reports to Slack
type Service interface {
	// PostMessage posts text to a channel as mrkdwn sections and returns the
	// message timestamp. Long text is split across several section blocks.
	PostMessage(ctx context.Context, channelID, text string) (string, error)
}
