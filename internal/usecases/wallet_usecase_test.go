package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wallet-sentinel.backend/internal/domain/entities"
	domainerrors "wallet-sentinel.backend/internal/domain/errors"
	"wallet-sentinel.backend/internal/infrastructure/blockchain"
)

func newWalletUsecase(walletRepo *mockWalletRepo, alertRepo *mockAlertRepo, adapter blockchain.Adapter, rules []*entities.AlertRule) *WalletUsecase {
	ruleRepo := new(mockAlertRuleRepo)
	ruleRepo.On("List", mock.Anything, true).Return(rules, nil)
	engine := NewRuleEngine(context.Background(), ruleRepo, NewAnomalyScorer())
	return NewWalletUsecase(walletRepo, alertRepo, testRegistry(adapter), engine, nil)
}

func TestWalletUsecase_Register(t *testing.T) {
	walletRepo := new(mockWalletRepo)
	walletRepo.On("Create", mock.Anything, mock.MatchedBy(func(w *entities.Wallet) bool {
		return w.Address == "0xabc" && w.Chain == entities.ChainEthereum && w.IsActive
	})).Return(true, nil)

	u := newWalletUsecase(walletRepo, new(mockAlertRepo), nil, nil)

	wallet, err := u.Register(context.Background(), &entities.RegisterWalletInput{
		Address: "  0xABC ",
		Chain:   "ethereum",
		Name:    "treasury",
	})
	require.NoError(t, err)
	require.Equal(t, "0xabc", wallet.Address)
	require.True(t, wallet.IsActive)
	walletRepo.AssertExpectations(t)
}

func TestWalletUsecase_RegisterExistingReturnsStored(t *testing.T) {
	existing := activeWallet("0xabc")
	existing.Name = "already here"

	walletRepo := new(mockWalletRepo)
	walletRepo.On("Create", mock.Anything, mock.Anything).Return(false, nil)
	walletRepo.On("GetByAddress", mock.Anything, "0xabc", entities.ChainEthereum).Return(existing, nil)

	u := newWalletUsecase(walletRepo, new(mockAlertRepo), nil, nil)

	wallet, err := u.Register(context.Background(), &entities.RegisterWalletInput{
		Address: "0xABC",
		Chain:   "ethereum",
	})
	require.NoError(t, err)
	require.Equal(t, "already here", wallet.Name)
}

func TestWalletUsecase_RegisterValidation(t *testing.T) {
	u := newWalletUsecase(new(mockWalletRepo), new(mockAlertRepo), nil, nil)

	_, err := u.Register(context.Background(), &entities.RegisterWalletInput{Address: "0xabc", Chain: "dogecoin"})
	require.ErrorIs(t, err, domainerrors.ErrUnsupportedChain)

	_, err = u.Register(context.Background(), &entities.RegisterWalletInput{Address: "   ", Chain: "ethereum"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestWalletUsecase_GetBalanceFresh(t *testing.T) {
	adapter := &stubAdapter{chain: entities.ChainEthereum, balance: 4.2, balanceOK: true}

	walletRepo := new(mockWalletRepo)
	walletRepo.On("GetByAddress", mock.Anything, "0xabc", entities.ChainEthereum).
		Return(activeWallet("0xabc"), nil)

	u := newWalletUsecase(walletRepo, new(mockAlertRepo), adapter, nil)

	reading, err := u.GetBalance(context.Background(), "0xABC", entities.ChainEthereum)
	require.NoError(t, err)
	require.Equal(t, 4.2, reading.Balance)
	require.True(t, reading.Available)
	require.False(t, reading.Cached)
}

func TestWalletUsecase_GetBalanceUnavailableIsNotZero(t *testing.T) {
	adapter := &stubAdapter{chain: entities.ChainEthereum, balance: 0, balanceOK: false}

	walletRepo := new(mockWalletRepo)
	walletRepo.On("GetByAddress", mock.Anything, "0xabc", entities.ChainEthereum).
		Return(activeWallet("0xabc"), nil)

	alertRepo := new(mockAlertRepo)
	rules := []*entities.AlertRule{thresholdRule(entities.RuleTypeBalance, 25)}
	u := newWalletUsecase(walletRepo, alertRepo, adapter, rules)

	reading, err := u.GetBalance(context.Background(), "0xabc", entities.ChainEthereum)
	require.NoError(t, err)
	require.False(t, reading.Available)
	// Unavailable readings must not trip low-balance rules.
	alertRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWalletUsecase_GetBalanceFiresLowBalanceAlert(t *testing.T) {
	adapter := &stubAdapter{chain: entities.ChainEthereum, balance: 10, balanceOK: true}

	walletRepo := new(mockWalletRepo)
	walletRepo.On("GetByAddress", mock.Anything, "0xabc", entities.ChainEthereum).
		Return(activeWallet("0xabc"), nil)

	alertRepo := new(mockAlertRepo)
	alertRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *entities.Alert) bool {
		return a.AlertType == entities.RuleTypeBalance && a.RiskLevel == entities.RiskHigh
	})).Return(nil)

	rules := []*entities.AlertRule{thresholdRule(entities.RuleTypeBalance, 25)}
	u := newWalletUsecase(walletRepo, alertRepo, adapter, rules)

	reading, err := u.GetBalance(context.Background(), "0xabc", entities.ChainEthereum)
	require.NoError(t, err)
	require.Equal(t, 10.0, reading.Balance)
	alertRepo.AssertExpectations(t)
}

func TestWalletUsecase_GetBalanceUnknownWallet(t *testing.T) {
	walletRepo := new(mockWalletRepo)
	walletRepo.On("GetByAddress", mock.Anything, "0xghost", entities.ChainEthereum).
		Return(nil, domainerrors.ErrNotFound)

	u := newWalletUsecase(walletRepo, new(mockAlertRepo), nil, nil)

	_, err := u.GetBalance(context.Background(), "0xghost", entities.ChainEthereum)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestWalletUsecase_ListRejectsUnknownChain(t *testing.T) {
	u := newWalletUsecase(new(mockWalletRepo), new(mockAlertRepo), nil, nil)

	_, err := u.List(context.Background(), entities.ChainID("dogecoin"), false)
	require.ErrorIs(t, err, domainerrors.ErrUnsupportedChain)
}
