package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wallet-sentinel.backend/internal/domain/entities"
	domainerrors "wallet-sentinel.backend/internal/domain/errors"
	"wallet-sentinel.backend/internal/infrastructure/blockchain"
)

func testRegistry(adapter blockchain.Adapter) *blockchain.Registry {
	registry := blockchain.NewRegistry(func(chain entities.ChainID) (blockchain.Adapter, error) {
		return nil, fmt.Errorf("no live adapter in tests")
	})
	if adapter != nil {
		registry.Register(adapter.Chain(), adapter)
	}
	return registry
}

func activeWallet(address string) *entities.Wallet {
	return &entities.Wallet{
		Address:  address,
		Chain:    entities.ChainEthereum,
		IsActive: true,
	}
}

func ethRaw(hash string, amount float64) entities.RawTransaction {
	return entities.RawTransaction{
		"hash":      hash,
		"to":        "0xcounterparty",
		"value":     amount,
		"status":    "success",
		"blockTime": int64(1700000000),
	}
}

func newTestCoordinator(adapter blockchain.Adapter, rules []*entities.AlertRule, txRepo *mockTransactionRepo, walletRepo *mockWalletRepo, alertRepo *mockAlertRepo) *IngestionCoordinator {
	ruleRepo := new(mockAlertRuleRepo)
	ruleRepo.On("List", mock.Anything, true).Return(rules, nil)
	scorer := NewAnomalyScorer()
	engine := NewRuleEngine(context.Background(), ruleRepo, scorer)

	return NewIngestionCoordinator(
		testRegistry(adapter),
		NewTransactionNormalizer(),
		scorer,
		engine,
		txRepo,
		walletRepo,
		alertRepo,
		0,
	)
}

func TestIngestion_SyncStoresFreshTransactions(t *testing.T) {
	adapter := &stubAdapter{chain: entities.ChainEthereum}
	for i := 0; i < 5; i++ {
		adapter.transactions = append(adapter.transactions, ethRaw(fmt.Sprintf("0xhash%d", i), float64(i+1)))
	}

	txRepo := new(mockTransactionRepo)
	txRepo.On("List", mock.Anything, mock.Anything).Return([]*entities.Transaction{}, nil)
	txRepo.On("Create", mock.Anything, mock.Anything).Return(true, nil)

	walletRepo := new(mockWalletRepo)
	walletRepo.On("GetByAddress", mock.Anything, "0xwallet", entities.ChainEthereum).
		Return(activeWallet("0xwallet"), nil)

	alertRepo := new(mockAlertRepo)

	c := newTestCoordinator(adapter, nil, txRepo, walletRepo, alertRepo)

	result, err := c.Sync(context.Background(), "0xWALLET", entities.ChainEthereum)
	require.NoError(t, err)
	require.Equal(t, 5, result.SyncedCount)
	require.Zero(t, result.SkippedCount)
	require.Zero(t, result.AlertCount)
	txRepo.AssertNumberOfCalls(t, "Create", 5)
	alertRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIngestion_RepeatSyncSkipsDuplicates(t *testing.T) {
	adapter := &stubAdapter{chain: entities.ChainEthereum}
	for i := 0; i < 5; i++ {
		adapter.transactions = append(adapter.transactions, ethRaw(fmt.Sprintf("0xhash%d", i), float64(i+1)))
	}

	txRepo := new(mockTransactionRepo)
	txRepo.On("List", mock.Anything, mock.Anything).Return([]*entities.Transaction{}, nil)
	// Everything already stored.
	txRepo.On("Create", mock.Anything, mock.Anything).Return(false, nil)

	walletRepo := new(mockWalletRepo)
	walletRepo.On("GetByAddress", mock.Anything, "0xwallet", entities.ChainEthereum).
		Return(activeWallet("0xwallet"), nil)

	alertRepo := new(mockAlertRepo)

	c := newTestCoordinator(adapter, nil, txRepo, walletRepo, alertRepo)

	result, err := c.Sync(context.Background(), "0xwallet", entities.ChainEthereum)
	require.NoError(t, err)
	require.Zero(t, result.SyncedCount)
	require.Equal(t, 5, result.SkippedCount)
	// Duplicates never reach rule evaluation.
	alertRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIngestion_MalformedRawIsSkippedNotFatal(t *testing.T) {
	adapter := &stubAdapter{
		chain: entities.ChainEthereum,
		transactions: []entities.RawTransaction{
			ethRaw("0xgood1", 1),
			{"value": 2.0}, // no hash
			ethRaw("0xgood2", 3),
		},
	}

	txRepo := new(mockTransactionRepo)
	txRepo.On("List", mock.Anything, mock.Anything).Return([]*entities.Transaction{}, nil)
	txRepo.On("Create", mock.Anything, mock.Anything).Return(true, nil)

	walletRepo := new(mockWalletRepo)
	walletRepo.On("GetByAddress", mock.Anything, "0xwallet", entities.ChainEthereum).
		Return(activeWallet("0xwallet"), nil)

	c := newTestCoordinator(adapter, nil, txRepo, walletRepo, new(mockAlertRepo))

	result, err := c.Sync(context.Background(), "0xwallet", entities.ChainEthereum)
	require.NoError(t, err)
	require.Equal(t, 2, result.SyncedCount)
	txRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestIngestion_FiredAlertsArePersisted(t *testing.T) {
	adapter := &stubAdapter{
		chain:        entities.ChainEthereum,
		transactions: []entities.RawTransaction{ethRaw("0xbig", 150)},
	}

	txRepo := new(mockTransactionRepo)
	txRepo.On("List", mock.Anything, mock.Anything).Return([]*entities.Transaction{}, nil)
	txRepo.On("Create", mock.Anything, mock.Anything).Return(true, nil)

	walletRepo := new(mockWalletRepo)
	walletRepo.On("GetByAddress", mock.Anything, "0xwallet", entities.ChainEthereum).
		Return(activeWallet("0xwallet"), nil)

	alertRepo := new(mockAlertRepo)
	alertRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *entities.Alert) bool {
		return a.AlertType == entities.RuleTypeTransaction && a.TransactionHash.String == "0xbig"
	})).Return(nil)

	rules := []*entities.AlertRule{thresholdRule(entities.RuleTypeTransaction, 100)}
	c := newTestCoordinator(adapter, rules, txRepo, walletRepo, alertRepo)

	result, err := c.Sync(context.Background(), "0xwallet", entities.ChainEthereum)
	require.NoError(t, err)
	require.Equal(t, 1, result.SyncedCount)
	require.Equal(t, 1, result.AlertCount)
	alertRepo.AssertExpectations(t)
}

func TestIngestion_ScoredFieldsLandOnStoredTransaction(t *testing.T) {
	adapter := &stubAdapter{
		chain:        entities.ChainEthereum,
		transactions: []entities.RawTransaction{ethRaw("0xspike", 35)},
	}

	// History mean 10, so 35 fires large_amount; 0xcounterparty is unseen.
	history := []*entities.Transaction{
		{Amount: 5}, {Amount: 15},
	}

	txRepo := new(mockTransactionRepo)
	txRepo.On("List", mock.Anything, mock.Anything).Return(history, nil)
	txRepo.On("Create", mock.Anything, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.AnomalyScore > 0.79 && tx.RiskLevel == entities.RiskHigh && tx.WalletAddress == "0xwallet"
	})).Return(true, nil)

	walletRepo := new(mockWalletRepo)
	walletRepo.On("GetByAddress", mock.Anything, "0xwallet", entities.ChainEthereum).
		Return(activeWallet("0xwallet"), nil)

	c := newTestCoordinator(adapter, nil, txRepo, walletRepo, new(mockAlertRepo))

	_, err := c.Sync(context.Background(), "0xwallet", entities.ChainEthereum)
	require.NoError(t, err)
	txRepo.AssertExpectations(t)
}

func TestIngestion_InactiveWallet(t *testing.T) {
	walletRepo := new(mockWalletRepo)
	wallet := activeWallet("0xwallet")
	wallet.IsActive = false
	walletRepo.On("GetByAddress", mock.Anything, "0xwallet", entities.ChainEthereum).
		Return(wallet, nil)

	c := newTestCoordinator(nil, nil, new(mockTransactionRepo), walletRepo, new(mockAlertRepo))

	_, err := c.Sync(context.Background(), "0xwallet", entities.ChainEthereum)
	require.ErrorIs(t, err, domainerrors.ErrWalletInactive)
}

func TestIngestion_UnsupportedChain(t *testing.T) {
	c := newTestCoordinator(nil, nil, new(mockTransactionRepo), new(mockWalletRepo), new(mockAlertRepo))

	_, err := c.Sync(context.Background(), "0xwallet", entities.ChainID("dogecoin"))
	require.ErrorIs(t, err, domainerrors.ErrUnsupportedChain)
}

func TestIngestion_UnknownWallet(t *testing.T) {
	walletRepo := new(mockWalletRepo)
	walletRepo.On("GetByAddress", mock.Anything, "0xghost", entities.ChainEthereum).
		Return(nil, domainerrors.ErrNotFound)

	c := newTestCoordinator(nil, nil, new(mockTransactionRepo), walletRepo, new(mockAlertRepo))

	_, err := c.Sync(context.Background(), "0xghost", entities.ChainEthereum)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
