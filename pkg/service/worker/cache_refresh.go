package worker

import (
	"context"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// DirectoryRefresher is the part of the directory cache the worker drives
type DirectoryRefresher interface {
	Refresh(ctx context.Context) (*model.Directory, error)
	Expiry() time.Time
}

// CacheRefreshWorker keeps the Hubstaff directory cache warm so requests
// rarely pay for a cold load
//
// Architecture assumptions:
// - Single server instance (each instance warms its own cache)
type CacheRefreshWorker struct {
	cache    DirectoryRefresher
	interval time.Duration
	clock    func() time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewCacheRefreshWorker creates a worker that checks the cache every interval
// and reloads it when it would expire before the next check
func NewCacheRefreshWorker(cache DirectoryRefresher, interval time.Duration) *CacheRefreshWorker {
	return &CacheRefreshWorker{
		cache:    cache,
		interval: interval,
		clock:    time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background refresh loop
// - Initial load and periodic refresh both run in a background goroutine
// - Does not block server startup
func (w *CacheRefreshWorker) Start(ctx context.Context) error {
	if w.interval <= 0 {
		return goerr.New("refresh interval must be positive", goerr.V("interval", w.interval))
	}

	logging.Default().Info("Directory cache refresh worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *CacheRefreshWorker) Stop() {
	logging.Default().Info("Directory cache refresh worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Directory cache refresh worker stopped")
}

func (w *CacheRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.refresh(ctx); err != nil {
		logging.Default().Error("Initial directory load failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !w.due() {
				continue
			}
			if err := w.refresh(ctx); err != nil {
				logging.Default().Error("Directory refresh failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("Directory cache refresh worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Directory cache refresh worker context cancelled")
			return
		}
	}
}

// due reports whether the cache expires before the next tick
func (w *CacheRefreshWorker) due() bool {
	expiry := w.cache.Expiry()
	if expiry.IsZero() {
		return true
	}
	return !w.clock().Add(w.interval).Before(expiry)
}

func (w *CacheRefreshWorker) refresh(ctx context.Context) error {
	startTime := time.Now()

	dir, err := w.cache.Refresh(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to refresh directory cache")
	}

	logging.Default().Info("Directory cache refreshed",
		"projects", len(dir.Projects),
		"members", len(dir.Members),
		"duration", time.Since(startTime).String())
	return nil
}
