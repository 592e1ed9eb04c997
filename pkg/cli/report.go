package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/abhiram98920/teamtracker/pkg/usecase"
	"github.com/abhiram98920/teamtracker/pkg/utils/debuglog"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdReport() *cli.Command {
	var name string
	var date string
	var post bool
	var cfg appConfigs

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "name",
			Aliases:     []string{"n"},
			Usage:       "Person to report on",
			Required:    true,
			Destination: &name,
		},
		&cli.StringFlag{
			Name:        "date",
			Aliases:     []string{"d"},
			Usage:       "Report date (YYYY-MM-DD, default today in the organization timezone)",
			Destination: &date,
		},
		&cli.BoolFlag{
			Name:        "post",
			Usage:       "Post the report to the configured Slack channel",
			Destination: &post,
		},
	}
	flags = append(flags, cfg.Flags()...)

	return &cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "Build the daily status report of one person",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			var reportDate types.Date
			if date != "" {
				d, err := types.ParseDate(date)
				if err != nil {
					return goerr.Wrap(err, "invalid --date", goerr.V("date", date))
				}
				reportDate = d
			}

			uc, repo, err := cfg.build(ctx, false)
			if err != nil {
				return err
			}
			defer closeRepository(repo)

			log := debuglog.New()
			ctx = debuglog.With(ctx, log)

			report, err := uc.Report.QAReport(ctx, reportDate, name, post)
			if err != nil {
				return goerr.Wrap(err, "failed to build report")
			}

			printReport(os.Stdout, report)
			printDebugLogs(os.Stderr, log.Entries())
			return nil
		},
	}
}

func printReport(w io.Writer, report *usecase.QAReport) {
	heading := color.New(color.Bold)
	overdue := color.New(color.FgRed)
	for _, line := range strings.Split(report.FormattedText, "\n") {
		switch {
		case strings.HasPrefix(line, "*"):
			heading.Fprintln(w, line)
		case strings.Contains(line, "OVERDUE"):
			overdue.Fprintln(w, line)
		default:
			fmt.Fprintln(w, line)
		}
	}

	if a := report.HubstaffActivity; a != nil {
		color.New(color.FgGreen).Fprintf(w, "\nHubstaff: %.2fh tracked, %d%% activity (%s)\n",
			a.Hours, a.ActivityPercentage, a.Team)
		for _, p := range a.Projects {
			fmt.Fprintf(w, "  %s: %.2fh\n", p.Name, p.Hours)
		}
	}
	if report.Posted {
		color.New(color.FgCyan).Fprintln(w, "\nPosted to Slack")
	}
}

func printDebugLogs(w io.Writer, entries []string) {
	if len(entries) == 0 {
		return
	}
	warn := color.New(color.FgYellow)
	for _, e := range entries {
		warn.Fprintf(w, "debug: %s\n", e)
	}
}
