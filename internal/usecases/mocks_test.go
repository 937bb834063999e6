package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wallet-sentinel.backend/internal/domain/entities"
)

type mockWalletRepo struct {
	mock.Mock
}

func (m *mockWalletRepo) Create(ctx context.Context, wallet *entities.Wallet) (bool, error) {
	args := m.Called(ctx, wallet)
	return args.Bool(0), args.Error(1)
}

func (m *mockWalletRepo) GetByAddress(ctx context.Context, address string, chain entities.ChainID) (*entities.Wallet, error) {
	args := m.Called(ctx, address, chain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *mockWalletRepo) List(ctx context.Context, chain entities.ChainID, activeOnly bool) ([]*entities.Wallet, error) {
	args := m.Called(ctx, chain, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Wallet), args.Error(1)
}

func (m *mockWalletRepo) Update(ctx context.Context, wallet *entities.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *mockWalletRepo) Deactivate(ctx context.Context, address string, chain entities.ChainID) error {
	args := m.Called(ctx, address, chain)
	return args.Error(0)
}

type mockTransactionRepo struct {
	mock.Mock
}

func (m *mockTransactionRepo) Create(ctx context.Context, tx *entities.Transaction) (bool, error) {
	args := m.Called(ctx, tx)
	return args.Bool(0), args.Error(1)
}

func (m *mockTransactionRepo) GetByHash(ctx context.Context, hash string) (*entities.Transaction, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) List(ctx context.Context, filter entities.TransactionFilter) ([]*entities.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) Count(ctx context.Context, walletAddress string, chain entities.ChainID) (int64, error) {
	args := m.Called(ctx, walletAddress, chain)
	return args.Get(0).(int64), args.Error(1)
}

type mockAlertRuleRepo struct {
	mock.Mock
}

func (m *mockAlertRuleRepo) Create(ctx context.Context, rule *entities.AlertRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *mockAlertRuleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.AlertRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AlertRule), args.Error(1)
}

func (m *mockAlertRuleRepo) List(ctx context.Context, enabledOnly bool) ([]*entities.AlertRule, error) {
	args := m.Called(ctx, enabledOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AlertRule), args.Error(1)
}

func (m *mockAlertRuleRepo) Update(ctx context.Context, rule *entities.AlertRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *mockAlertRuleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockAlertRepo struct {
	mock.Mock
}

func (m *mockAlertRepo) Create(ctx context.Context, alert *entities.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *mockAlertRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Alert), args.Error(1)
}

func (m *mockAlertRepo) List(ctx context.Context, filter entities.AlertFilter) ([]*entities.Alert, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Alert), args.Error(1)
}

func (m *mockAlertRepo) Resolve(ctx context.Context, id uuid.UUID) (*entities.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Alert), args.Error(1)
}

// stubAdapter is a canned-response chain adapter for pipeline tests.
type stubAdapter struct {
	chain        entities.ChainID
	balance      float64
	balanceOK    bool
	transactions []entities.RawTransaction
	block        *entities.BlockInfo
}

func (a *stubAdapter) Chain() entities.ChainID { return a.chain }

func (a *stubAdapter) GetBalance(ctx context.Context, address, tokenAddress string) (float64, bool) {
	return a.balance, a.balanceOK
}

func (a *stubAdapter) GetTransactions(ctx context.Context, address string, limit int) []entities.RawTransaction {
	if limit < len(a.transactions) {
		return a.transactions[:limit]
	}
	return a.transactions
}

func (a *stubAdapter) GetBlock(ctx context.Context, number *uint64) *entities.BlockInfo {
	return a.block
}
