package repositories

import (
	"context"

	"wallet-sentinel.backend/internal/domain/entities"
)

// WalletRepository defines monitored wallet data operations
type WalletRepository interface {
	// Create registers a wallet. A wallet with the same (address, chain)
	// already present is treated as success and left untouched; the return
	// value reports whether a new row was inserted.
	Create(ctx context.Context, wallet *entities.Wallet) (bool, error)
	GetByAddress(ctx context.Context, address string, chain entities.ChainID) (*entities.Wallet, error)
	List(ctx context.Context, chain entities.ChainID, activeOnly bool) ([]*entities.Wallet, error)
	Update(ctx context.Context, wallet *entities.Wallet) error
	// Deactivate soft-disables a wallet; rows are never hard-deleted.
	Deactivate(ctx context.Context, address string, chain entities.ChainID) error
}
