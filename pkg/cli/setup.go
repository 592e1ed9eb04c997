package cli

import (
	"context"

	"github.com/abhiram98920/teamtracker/pkg/cli/config"
	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
	"github.com/abhiram98920/teamtracker/pkg/usecase"
	"github.com/abhiram98920/teamtracker/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// appConfigs groups the configuration shared by commands that run use cases
type appConfigs struct {
	app      config.AppConfig
	repo     config.Repository
	hubstaff config.Hubstaff
	slack    config.Slack
}

func (x *appConfigs) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, x.app.Flags()...)
	flags = append(flags, x.repo.Flags()...)
	flags = append(flags, x.hubstaff.Flags()...)
	flags = append(flags, x.slack.Flags()...)
	return flags
}

// build creates the repository and use cases. With requireHubstaff a missing
// organization is an error; otherwise the pipeline is left disabled. The
// caller must close the returned repository.
func (x *appConfigs) build(ctx context.Context, requireHubstaff bool) (*usecase.UseCases, interfaces.Repository, error) {
	settings, err := x.app.Configure()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load configuration")
	}
	settings.SlackChannelID = x.slack.ChannelID()

	repo, err := x.repo.Configure(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize repository")
	}

	ucOpts := []usecase.Option{usecase.WithSettings(settings)}

	if x.hubstaff.IsConfigured() || requireHubstaff {
		svc, err := x.hubstaff.Configure(repo.Token())
		if err != nil {
			closeRepository(repo)
			return nil, nil, goerr.Wrap(err, "failed to configure hubstaff")
		}
		ucOpts = append(ucOpts, usecase.WithHubstaff(svc))
		logging.Default().Info("Hubstaff service enabled", "hubstaff", x.hubstaff)
	} else {
		logging.Default().Warn("Hubstaff organization not configured, activity features are disabled")
	}

	slackSvc, err := x.slack.Configure()
	if err != nil {
		closeRepository(repo)
		return nil, nil, goerr.Wrap(err, "failed to configure slack")
	}
	if slackSvc != nil {
		ucOpts = append(ucOpts, usecase.WithSlack(slackSvc))
		logging.Default().Info("Slack report delivery enabled", "slack", x.slack)
	} else {
		logging.Default().Info("Slack Bot Token not configured, reports will not be posted")
	}

	return usecase.New(repo, ucOpts...), repo, nil
}

func closeRepository(repo interfaces.Repository) {
	if err := repo.Close(); err != nil {
		logging.Default().Error("failed to close repository", "error", err.Error())
	}
}
