package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/abhiram98920/teamtracker/pkg/usecase"
	"github.com/abhiram98920/teamtracker/pkg/utils/debuglog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdActivity() *cli.Command {
	var projects string
	var cfg appConfigs

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "projects",
			Aliases:     []string{"p"},
			Usage:       "Comma separated local project names",
			Required:    true,
			Destination: &projects,
		},
	}
	flags = append(flags, cfg.Flags()...)

	return &cli.Command{
		Name:    "activity",
		Aliases: []string{"a"},
		Usage:   "Aggregate tracked time and team days of local projects",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, repo, err := cfg.build(ctx, true)
			if err != nil {
				return err
			}
			defer closeRepository(repo)

			log := debuglog.New()
			ctx = debuglog.With(ctx, log)

			results, err := uc.Activity.ProjectActivity(ctx, usecase.ParseProjectNames(projects))
			if err != nil {
				return goerr.Wrap(err, "failed to aggregate project activity")
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(struct {
				Results   []*usecase.ProjectActivity `json:"results"`
				DebugLogs []string                   `json:"debug_logs"`
			}{
				Results:   results,
				DebugLogs: log.Entries(),
			}); err != nil {
				return goerr.Wrap(err, "failed to write result")
			}
			return nil
		},
	}
}
