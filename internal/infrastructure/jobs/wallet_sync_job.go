package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"wallet-sentinel.backend/internal/domain/entities"
	"wallet-sentinel.backend/internal/domain/repositories"
	"wallet-sentinel.backend/internal/usecases"
	"wallet-sentinel.backend/pkg/logger"
)

// WalletSyncJob periodically syncs every active monitored wallet.
// Distinct wallets sync in parallel; the coordinator's per-wallet lock
// serializes overlapping syncs of the same wallet across ticks.
type WalletSyncJob struct {
	walletRepo  repositories.WalletRepository
	coordinator *usecases.IngestionCoordinator
	interval    time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewWalletSyncJob creates a new wallet sync job
func NewWalletSyncJob(walletRepo repositories.WalletRepository, coordinator *usecases.IngestionCoordinator, interval time.Duration) *WalletSyncJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &WalletSyncJob{
		walletRepo:  walletRepo,
		coordinator: coordinator,
		interval:    interval,
		stop:        make(chan struct{}),
	}
}

// Start runs the sync loop until the context is cancelled or Stop is called
func (j *WalletSyncJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting wallet sync job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "wallet sync job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "wallet sync job stopped")
			return
		case <-ticker.C:
			j.syncAll(ctx)
		}
	}
}

// Stop terminates the sync loop
func (j *WalletSyncJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *WalletSyncJob) syncAll(ctx context.Context) {
	wallets, err := j.walletRepo.List(ctx, "", true)
	if err != nil {
		logger.Error(ctx, "failed to list wallets for sync", zap.Error(err))
		return
	}
	if len(wallets) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, wallet := range wallets {
		wg.Add(1)
		go func(w *entities.Wallet) {
			defer wg.Done()
			result, err := j.coordinator.Sync(ctx, w.Address, w.Chain)
			if err != nil {
				logger.Error(ctx, "scheduled wallet sync failed",
					zap.String("wallet", w.Address),
					zap.String("chain", string(w.Chain)),
					zap.Error(err),
				)
				return
			}
			if result.SyncedCount > 0 || result.AlertCount > 0 {
				logger.Info(ctx, "scheduled wallet sync",
					zap.String("wallet", w.Address),
					zap.String("chain", string(w.Chain)),
					zap.Int("synced", result.SyncedCount),
					zap.Int("alerts", result.AlertCount),
				)
			}
		}(wallet)
	}
	wg.Wait()
}
