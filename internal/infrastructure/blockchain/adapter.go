package blockchain

import (
	"context"

	"wallet-sentinel.backend/internal/domain/entities"
)

// Adapter is the per-chain capability the monitoring pipeline consumes.
//
// Adapters are fail-soft: an underlying RPC failure is logged and surfaces
// as a zero value or empty collection, never as an error. GetBalance also
// returns an availability flag so callers can tell an unreachable chain
// apart from a genuinely empty account.
type Adapter interface {
	// Chain returns the chain this adapter talks to.
	Chain() entities.ChainID
	// GetBalance returns the native balance of address in chain-native
	// units, or the token balance when tokenAddress is non-empty.
	// ok is false when the chain could not be queried.
	GetBalance(ctx context.Context, address, tokenAddress string) (balance float64, ok bool)
	// GetTransactions returns up to limit raw transaction payloads for
	// the address. Empty on any failure.
	GetTransactions(ctx context.Context, address string, limit int) []entities.RawTransaction
	// GetBlock returns info for the given block number, or the latest
	// block when number is nil. Nil on any failure.
	GetBlock(ctx context.Context, number *uint64) *entities.BlockInfo
}
