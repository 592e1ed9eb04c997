package config

import (
	"log/slog"

	"github.com/abhiram98920/teamtracker/pkg/service/slack"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for report delivery
type Slack struct {
	botToken  string
	channelID string
	apiURL    string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (for posting reports)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("TEAMTRACKER_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID receiving status reports",
			Category:    "Slack",
			Destination: &x.channelID,
			Sources:     cli.EnvVars("TEAMTRACKER_SLACK_CHANNEL_ID"),
		},
		&cli.StringFlag{
			Name:        "slack-api-url",
			Usage:       "Slack API root (for testing)",
			Category:    "Slack",
			Destination: &x.apiURL,
			Sources:     cli.EnvVars("TEAMTRACKER_SLACK_API_URL"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel-id", x.channelID),
	)
}

// IsConfigured checks if both the bot token and channel are set
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" && x.channelID != ""
}

// ChannelID returns the report channel
func (x *Slack) ChannelID() string {
	return x.channelID
}

// Configure creates the Slack service, or nil when not configured
func (x *Slack) Configure() (slack.Service, error) {
	if x.botToken == "" {
		return nil, nil
	}
	if x.channelID == "" {
		return nil, goerr.Wrap(ErrInvalidConfig, "slack-channel-id is required with slack-bot-token")
	}

	var opts []slack.Option
	if x.apiURL != "" {
		opts = append(opts, slack.WithAPIURL(x.apiURL))
	}
	svc, err := slack.New(x.botToken, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack service")
	}
	return svc, nil
}
