package usecases

import (
	"context"
	"time"

	"go.uber.org/zap"

	"wallet-sentinel.backend/internal/domain/entities"
	domainerrors "wallet-sentinel.backend/internal/domain/errors"
	"wallet-sentinel.backend/internal/domain/repositories"
	"wallet-sentinel.backend/internal/infrastructure/blockchain"
	"wallet-sentinel.backend/pkg/logger"
	"wallet-sentinel.backend/pkg/redis"
)

// WalletUsecase handles monitored wallet business logic
type WalletUsecase struct {
	walletRepo   repositories.WalletRepository
	alertRepo    repositories.AlertRepository
	registry     *blockchain.Registry
	ruleEngine   *RuleEngine
	balanceCache *redis.BalanceCache
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(
	walletRepo repositories.WalletRepository,
	alertRepo repositories.AlertRepository,
	registry *blockchain.Registry,
	ruleEngine *RuleEngine,
	balanceCache *redis.BalanceCache,
) *WalletUsecase {
	return &WalletUsecase{
		walletRepo:   walletRepo,
		alertRepo:    alertRepo,
		registry:     registry,
		ruleEngine:   ruleEngine,
		balanceCache: balanceCache,
	}
}

// Register starts monitoring a wallet. Registering an already-monitored
// (address, chain) pair is a success that returns the existing wallet.
func (u *WalletUsecase) Register(ctx context.Context, input *entities.RegisterWalletInput) (*entities.Wallet, error) {
	chain := entities.ChainID(input.Chain)
	if !chain.IsSupported() {
		return nil, domainerrors.ErrUnsupportedChain
	}
	address := NormalizeAddress(input.Address)
	if address == "" {
		return nil, domainerrors.ErrInvalidInput
	}

	wallet := &entities.Wallet{
		Address:     address,
		Chain:       chain,
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
	}

	inserted, err := u.walletRepo.Create(ctx, wallet)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return u.walletRepo.GetByAddress(ctx, address, chain)
	}

	logger.Info(ctx, "wallet registered",
		zap.String("address", address),
		zap.String("chain", string(chain)),
	)
	return wallet, nil
}

// List returns monitored wallets, optionally filtered by chain
func (u *WalletUsecase) List(ctx context.Context, chain entities.ChainID, activeOnly bool) ([]*entities.Wallet, error) {
	if chain != "" && !chain.IsSupported() {
		return nil, domainerrors.ErrUnsupportedChain
	}
	return u.walletRepo.List(ctx, chain, activeOnly)
}

// Get returns one monitored wallet
func (u *WalletUsecase) Get(ctx context.Context, address string, chain entities.ChainID) (*entities.Wallet, error) {
	return u.walletRepo.GetByAddress(ctx, address, chain)
}

// Deactivate stops monitoring a wallet without deleting its history
func (u *WalletUsecase) Deactivate(ctx context.Context, address string, chain entities.ChainID) error {
	return u.walletRepo.Deactivate(ctx, address, chain)
}

// GetBalance reads the wallet's balance, serving from cache when fresh.
// The reading reports Available=false when the chain could not be queried;
// an unknown balance is never conflated with a zero one. Fresh readings are
// evaluated against balance rules and fired alerts are persisted.
func (u *WalletUsecase) GetBalance(ctx context.Context, address string, chain entities.ChainID) (*entities.BalanceReading, error) {
	if !chain.IsSupported() {
		return nil, domainerrors.ErrUnsupportedChain
	}
	address = NormalizeAddress(address)

	wallet, err := u.walletRepo.GetByAddress(ctx, address, chain)
	if err != nil {
		return nil, err
	}

	if u.balanceCache != nil {
		if cached, ok := u.balanceCache.Get(ctx, address, string(chain)); ok {
			return &entities.BalanceReading{
				Address:   address,
				Chain:     chain,
				Balance:   cached.Balance,
				Available: true,
				Cached:    true,
				ReadAt:    cached.ReadAt,
			}, nil
		}
	}

	adapter, err := u.registry.Get(chain)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	balance, ok := adapter.GetBalance(ctx, address, "")
	reading := &entities.BalanceReading{
		Address:   address,
		Chain:     chain,
		Balance:   balance,
		Available: ok,
		ReadAt:    now,
	}
	if !ok {
		return reading, nil
	}

	if u.balanceCache != nil {
		if err := u.balanceCache.Put(ctx, address, string(chain), balance, now); err != nil {
			logger.Warn(ctx, "failed to cache balance",
				zap.String("address", address),
				zap.Error(err),
			)
		}
	}

	for _, draft := range u.ruleEngine.EvaluateBalance(wallet.Address, chain, balance) {
		if err := u.alertRepo.Create(ctx, draft); err != nil {
			logger.Error(ctx, "failed to persist balance alert",
				zap.String("address", address),
				zap.Error(err),
			)
		}
	}

	return reading, nil
}
