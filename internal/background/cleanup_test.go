package background

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

type countingSweeper struct {
	calls atomic.Int64
}

func (s *countingSweeper) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	s.calls.Add(1)
	return 1, nil
}

func TestCleanupManager_RunsImmediatelyAndOnTick(t *testing.T) {
	sweeper := &countingSweeper{}
	cm := NewCleanupManager(sweeper, slog.Default(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go cm.Start(ctx)

	time.Sleep(35 * time.Millisecond)
	cm.Stop()

	if got := sweeper.calls.Load(); got < 2 {
		t.Errorf("sweep calls: got %d, want at least 2 (startup + ticks)", got)
	}
}

func TestCleanupManager_StopsOnContextCancel(t *testing.T) {
	sweeper := &countingSweeper{}
	cm := NewCleanupManager(sweeper, slog.Default(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		cm.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
}
