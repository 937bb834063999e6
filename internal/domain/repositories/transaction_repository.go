package repositories

import (
	"context"

	"wallet-sentinel.backend/internal/domain/entities"
)

// TransactionRepository defines canonical transaction data operations
type TransactionRepository interface {
	// Create inserts a transaction. Insertion is idempotent on Hash: a
	// duplicate returns (false, nil) and leaves the stored row unchanged.
	Create(ctx context.Context, tx *entities.Transaction) (bool, error)
	GetByHash(ctx context.Context, hash string) (*entities.Transaction, error)
	// List returns transactions matching the filter, newest first by
	// on-chain timestamp.
	List(ctx context.Context, filter entities.TransactionFilter) ([]*entities.Transaction, error)
	Count(ctx context.Context, walletAddress string, chain entities.ChainID) (int64, error)
}
