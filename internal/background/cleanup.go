package background

import (
	"context"
	"log/slog"
	"time"
)

// RevocationSweeper deletes deny-list entries past their natural expiry.
type RevocationSweeper interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// CleanupManager periodically sweeps expired revocation entries so the
// deny-list stays bounded by each token's own lifetime.
type CleanupManager struct {
	ledger   RevocationSweeper
	logger   *slog.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewCleanupManager creates a new cleanup manager
func NewCleanupManager(ledger RevocationSweeper, logger *slog.Logger, interval time.Duration) *CleanupManager {
	return &CleanupManager{
		ledger:   ledger,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep. Runs once immediately, then on every tick
// until Stop is called or the context is cancelled.
func (cm *CleanupManager) Start(ctx context.Context) {
	ticker := time.NewTicker(cm.interval)
	defer ticker.Stop()

	cm.runSweep(ctx)

	for {
		select {
		case <-ticker.C:
			cm.runSweep(ctx)
		case <-cm.stopCh:
			cm.logger.Info("cleanup manager stopped")
			return
		case <-ctx.Done():
			cm.logger.Info("cleanup manager context cancelled")
			return
		}
	}
}

func (cm *CleanupManager) runSweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	rowsDeleted, err := cm.ledger.DeleteExpired(sweepCtx, time.Now())
	if err != nil {
		cm.logger.Error("failed to sweep expired revocations", slog.Any("error", err))
		return
	}

	if rowsDeleted > 0 {
		cm.logger.Info("expired revocation sweep completed", slog.Int64("rows_deleted", rowsDeleted))
	}
}

// Stop signals the cleanup manager to stop
func (cm *CleanupManager) Stop() {
	close(cm.stopCh)
}
