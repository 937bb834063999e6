package usecases

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"wallet-sentinel.backend/internal/domain/entities"
	domainerrors "wallet-sentinel.backend/internal/domain/errors"
	"wallet-sentinel.backend/internal/domain/repositories"
	"wallet-sentinel.backend/internal/infrastructure/blockchain"
	"wallet-sentinel.backend/pkg/logger"
	"wallet-sentinel.backend/pkg/metrics"
)

const defaultFetchLimit = 100

// IngestionCoordinator drives the monitoring pipeline for one wallet/chain
// pair: adapter fetch, normalize, score against history, persist, rule
// evaluation, alert persistence. It is the only component that calls the
// others.
//
// Syncs for the same wallet are serialized through a per-wallet lock: the
// scorer reads the wallet's history before each insert, so two concurrent
// syncs of one wallet would score against stale history. Distinct wallets
// sync fully in parallel.
type IngestionCoordinator struct {
	registry   *blockchain.Registry
	normalizer *TransactionNormalizer
	scorer     *AnomalyScorer
	ruleEngine *RuleEngine
	txRepo     repositories.TransactionRepository
	walletRepo repositories.WalletRepository
	alertRepo  repositories.AlertRepository
	fetchLimit int

	walletLocks sync.Map // wallet key -> *sync.Mutex
}

// NewIngestionCoordinator creates a new ingestion coordinator
func NewIngestionCoordinator(
	registry *blockchain.Registry,
	normalizer *TransactionNormalizer,
	scorer *AnomalyScorer,
	ruleEngine *RuleEngine,
	txRepo repositories.TransactionRepository,
	walletRepo repositories.WalletRepository,
	alertRepo repositories.AlertRepository,
	fetchLimit int,
) *IngestionCoordinator {
	if fetchLimit <= 0 {
		fetchLimit = defaultFetchLimit
	}
	return &IngestionCoordinator{
		registry:   registry,
		normalizer: normalizer,
		scorer:     scorer,
		ruleEngine: ruleEngine,
		txRepo:     txRepo,
		walletRepo: walletRepo,
		alertRepo:  alertRepo,
		fetchLimit: fetchLimit,
	}
}

func (c *IngestionCoordinator) lockWallet(address string, chain entities.ChainID) *sync.Mutex {
	key := address + "|" + string(chain)
	mu, _ := c.walletLocks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Sync fetches, normalizes, scores and persists the wallet's transactions,
// then evaluates alert rules on each newly stored transaction. A failure on
// one transaction is logged and skipped; previously persisted transactions
// are never rolled back.
func (c *IngestionCoordinator) Sync(ctx context.Context, walletAddress string, chain entities.ChainID) (*entities.SyncResult, error) {
	if !chain.IsSupported() {
		return nil, domainerrors.ErrUnsupportedChain
	}
	walletAddress = NormalizeAddress(walletAddress)

	wallet, err := c.walletRepo.GetByAddress(ctx, walletAddress, chain)
	if err != nil {
		return nil, err
	}
	if !wallet.IsActive {
		return nil, domainerrors.ErrWalletInactive
	}

	adapter, err := c.registry.Get(chain)
	if err != nil {
		return nil, err
	}

	mu := c.lockWallet(walletAddress, chain)
	mu.Lock()
	defer mu.Unlock()

	raws := adapter.GetTransactions(ctx, walletAddress, c.fetchLimit)
	result := &entities.SyncResult{WalletAddress: walletAddress, Chain: chain}

	for _, raw := range raws {
		if err := c.ingestOne(ctx, raw, walletAddress, chain, result); err != nil {
			metrics.SyncErrors.WithLabelValues(string(chain)).Inc()
			logger.Warn(ctx, "skipping transaction after ingest failure",
				zap.String("wallet", walletAddress),
				zap.String("chain", string(chain)),
				zap.Error(err),
			)
		}
	}

	logger.Info(ctx, "wallet sync complete",
		zap.String("wallet", walletAddress),
		zap.String("chain", string(chain)),
		zap.Int("synced", result.SyncedCount),
		zap.Int("skipped", result.SkippedCount),
		zap.Int("alerts", result.AlertCount),
	)
	return result, nil
}

func (c *IngestionCoordinator) ingestOne(ctx context.Context, raw entities.RawTransaction, walletAddress string, chain entities.ChainID, result *entities.SyncResult) error {
	tx := c.normalizer.Normalize(raw, chain)
	if tx.Hash == "" {
		return domainerrors.ErrInvalidInput
	}
	tx.WalletAddress = walletAddress

	history, err := c.txRepo.List(ctx, entities.TransactionFilter{
		WalletAddress: walletAddress,
		Chain:         chain,
	})
	if err != nil {
		return err
	}

	score := c.scorer.Score(tx, history)
	tx.AnomalyScore = score.AnomalyScore
	tx.RiskLevel = score.RiskLevel

	inserted, err := c.txRepo.Create(ctx, tx)
	if err != nil {
		return err
	}
	if !inserted {
		// Already stored; idempotent no-op, not an error.
		result.SkippedCount++
		metrics.DuplicatesSkipped.WithLabelValues(string(chain)).Inc()
		return nil
	}
	result.SyncedCount++
	metrics.TransactionsSynced.WithLabelValues(string(chain)).Inc()

	var drafts []*entities.Alert
	drafts = append(drafts, c.ruleEngine.EvaluateTransaction(tx)...)
	drafts = append(drafts, c.ruleEngine.EvaluateContract(tx)...)
	drafts = append(drafts, c.ruleEngine.EvaluateAnomaly(tx, history)...)

	for _, draft := range drafts {
		if err := c.alertRepo.Create(ctx, draft); err != nil {
			logger.Error(ctx, "failed to persist alert",
				zap.String("wallet", walletAddress),
				zap.String("alert_type", string(draft.AlertType)),
				zap.Error(err),
			)
			continue
		}
		result.AlertCount++
		metrics.AlertsFired.WithLabelValues(string(draft.AlertType)).Inc()
	}

	return nil
}
