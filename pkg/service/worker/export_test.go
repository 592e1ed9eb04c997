package worker

import "time"

// SetClock replaces time.Now for testing
func (w *CacheRefreshWorker) SetClock(clock func() time.Time) {
	w.clock = clock
}

// Due is exported for testing
func (w *CacheRefreshWorker) Due() bool {
	return w.due()
}
