package blockchain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"wallet-sentinel.backend/internal/domain/entities"
)

func TestEVMAdapter_GetTransactionsViaFetcher(t *testing.T) {
	fetched := []entities.RawTransaction{
		{"hash": "0xaaa", "value": 1.5},
		{"hash": "0xbbb", "value": 2.5},
	}

	var gotAddress string
	var gotLimit int
	a := NewEVMAdapterWithClient(entities.ChainEthereum, nil,
		func(ctx context.Context, address string, limit int) ([]entities.RawTransaction, error) {
			gotAddress = address
			gotLimit = limit
			return fetched, nil
		})

	txs := a.GetTransactions(context.Background(), "0xwallet", 50)
	require.Equal(t, fetched, txs)
	require.Equal(t, "0xwallet", gotAddress)
	require.Equal(t, 50, gotLimit)
}

func TestEVMAdapter_GetTransactionsFetcherErrorFailSoft(t *testing.T) {
	a := NewEVMAdapterWithClient(entities.ChainEthereum, nil,
		func(ctx context.Context, address string, limit int) ([]entities.RawTransaction, error) {
			return nil, errors.New("indexer down")
		})

	require.Nil(t, a.GetTransactions(context.Background(), "0xwallet", 50))
}

func TestEVMAdapter_GetTransactionsNoFetcher(t *testing.T) {
	a := NewEVMAdapterWithClient(entities.ChainEthereum, nil, nil)

	require.Nil(t, a.GetTransactions(context.Background(), "0xwallet", 50))
}

func TestEVMAdapter_Chain(t *testing.T) {
	a := NewEVMAdapterWithClient(entities.ChainEthereum, nil, nil)
	require.Equal(t, entities.ChainEthereum, a.Chain())
}
