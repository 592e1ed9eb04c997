package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpctrl "github.com/abhiram98920/teamtracker/pkg/controller/http"
	"github.com/abhiram98920/teamtracker/pkg/service/worker"
	"github.com/abhiram98920/teamtracker/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var requestTimeout time.Duration
	var refreshInterval time.Duration
	var cfg appConfigs

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("TEAMTRACKER_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "request-timeout",
			Usage:       "Timeout for API requests (0 disables)",
			Value:       2 * time.Minute,
			Sources:     cli.EnvVars("TEAMTRACKER_REQUEST_TIMEOUT"),
			Destination: &requestTimeout,
		},
		&cli.DurationFlag{
			Name:        "cache-refresh-interval",
			Usage:       "Interval of the background directory refresh check",
			Value:       5 * time.Minute,
			Sources:     cli.EnvVars("TEAMTRACKER_CACHE_REFRESH_INTERVAL"),
			Destination: &refreshInterval,
		},
	}
	flags = append(flags, cfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, repo, err := cfg.build(ctx, false)
			if err != nil {
				return err
			}
			defer closeRepository(repo)

			var refreshWorker *worker.CacheRefreshWorker
			if uc.HubstaffEnabled() {
				refreshWorker = worker.NewCacheRefreshWorker(uc.Directory, refreshInterval)
				if err := refreshWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start cache refresh worker")
				}
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpctrl.WithRequestTimeout(requestTimeout)),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "hubstaff", uc.HubstaffEnabled())
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				if refreshWorker != nil {
					refreshWorker.Stop()
				}
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if refreshWorker != nil {
					refreshWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
