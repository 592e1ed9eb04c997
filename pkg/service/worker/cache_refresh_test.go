package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/service/worker"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

// mockRefresher is a mock implementation of worker.DirectoryRefresher for testing
type mockRefresher struct {
	mu     sync.Mutex
	expiry time.Time
	err    error
	called int
}

func (m *mockRefresher) Refresh(ctx context.Context) (*model.Directory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.called++
	if m.err != nil {
		return nil, m.err
	}
	return &model.Directory{
		Projects: []*model.RemoteProject{{ID: 1, Name: "Mobile App"}},
		Members:  map[int64]*model.MemberIdentity{},
	}, nil
}

func (m *mockRefresher) Expiry() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expiry
}

func (m *mockRefresher) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.called
}

func TestCacheRefreshWorker_StartStop(t *testing.T) {
	cache := &mockRefresher{}
	w := worker.NewCacheRefreshWorker(cache, 10*time.Millisecond)

	gt.NoError(t, w.Start(context.Background())).Required()
	time.Sleep(55 * time.Millisecond)
	w.Stop()

	// initial load plus ticks; expiry is zero so every tick refreshes
	gt.Number(t, cache.calls()).GreaterOrEqual(3)
}

func TestCacheRefreshWorker_FailureKeepsRunning(t *testing.T) {
	cache := &mockRefresher{err: goerr.New("api down")}
	w := worker.NewCacheRefreshWorker(cache, 10*time.Millisecond)

	gt.NoError(t, w.Start(context.Background())).Required()
	time.Sleep(35 * time.Millisecond)
	w.Stop()

	gt.Number(t, cache.calls()).GreaterOrEqual(2)
}

func TestCacheRefreshWorker_ContextCancel(t *testing.T) {
	cache := &mockRefresher{}
	w := worker.NewCacheRefreshWorker(cache, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	gt.NoError(t, w.Start(ctx)).Required()
	cancel()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancel")
	}
}

func TestCacheRefreshWorker_Due(t *testing.T) {
	now := time.Date(2026, 2, 11, 10, 0, 0, 0, time.UTC)
	cache := &mockRefresher{}
	w := worker.NewCacheRefreshWorker(cache, 5*time.Minute)
	w.SetClock(func() time.Time { return now })

	gt.Bool(t, w.Due()).True()

	cache.expiry = now.Add(20 * time.Minute)
	gt.Bool(t, w.Due()).False()

	cache.expiry = now.Add(5 * time.Minute)
	gt.Bool(t, w.Due()).True()

	cache.expiry = now.Add(time.Minute)
	gt.Bool(t, w.Due()).True()
}

func TestCacheRefreshWorker_InvalidInterval(t *testing.T) {
	w := worker.NewCacheRefreshWorker(&mockRefresher{}, 0)
	gt.Error(t, w.Start(context.Background()))
}
