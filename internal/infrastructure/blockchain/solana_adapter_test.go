package blockchain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"wallet-sentinel.backend/internal/domain/entities"
)

// newSolanaRPC starts a JSON-RPC server answering from canned per-method
// results. A method mapped to nil produces an rpc error response.
func newSolanaRPC(t *testing.T, results map[string]interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		result, ok := results[req.Method]
		if !ok || result == nil {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"jsonrpc": "2.0", "id": 1,
				"error": map[string]interface{}{"code": -32601, "message": "method not found"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0", "id": 1, "result": result,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSolanaAdapter_GetBalance(t *testing.T) {
	srv := newSolanaRPC(t, map[string]interface{}{
		"getBalance": map[string]interface{}{"value": uint64(2500000000)},
	})
	a := NewSolanaAdapter(srv.URL)

	balance, ok := a.GetBalance(context.Background(), "SomeAddress", "")
	require.True(t, ok)
	require.Equal(t, 2.5, balance)
}

func TestSolanaAdapter_GetBalanceTokenUnsupported(t *testing.T) {
	a := NewSolanaAdapter("http://127.0.0.1:0")

	_, ok := a.GetBalance(context.Background(), "SomeAddress", "TokenMint")
	require.False(t, ok)
}

func TestSolanaAdapter_GetBalanceRPCErrorIsUnavailable(t *testing.T) {
	srv := newSolanaRPC(t, map[string]interface{}{})
	a := NewSolanaAdapter(srv.URL)

	balance, ok := a.GetBalance(context.Background(), "SomeAddress", "")
	require.False(t, ok)
	require.Zero(t, balance)
}

func TestSolanaAdapter_GetTransactions(t *testing.T) {
	blockTime := int64(1700000000)
	srv := newSolanaRPC(t, map[string]interface{}{
		"getSignaturesForAddress": []map[string]interface{}{
			{"signature": "5sigA", "slot": uint64(100), "blockTime": blockTime, "err": nil},
			{"signature": "5sigB", "slot": uint64(101), "err": map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}}},
		},
	})
	a := NewSolanaAdapter(srv.URL)

	txs := a.GetTransactions(context.Background(), "SomeAddress", 10)
	require.Len(t, txs, 2)

	require.Equal(t, "5sigA", txs[0]["signature"])
	require.EqualValues(t, 100, txs[0]["slot"])
	require.Equal(t, "success", txs[0]["status"])
	require.EqualValues(t, blockTime, txs[0]["block_time"])

	require.Equal(t, "failed", txs[1]["status"])
	_, hasBlockTime := txs[1]["block_time"]
	require.False(t, hasBlockTime)
}

func TestSolanaAdapter_GetTransactionsFailSoft(t *testing.T) {
	a := NewSolanaAdapter("http://127.0.0.1:0")

	require.Nil(t, a.GetTransactions(context.Background(), "SomeAddress", 10))
}

func TestSolanaAdapter_GetBlockLatest(t *testing.T) {
	srv := newSolanaRPC(t, map[string]interface{}{
		"getSlot":  uint64(250000000),
		"getBlock": map[string]interface{}{"blockhash": "Hash123", "blockTime": int64(1700000000)},
	})
	a := NewSolanaAdapter(srv.URL)

	block := a.GetBlock(context.Background(), nil)
	require.NotNil(t, block)
	require.EqualValues(t, 250000000, block.Number)
	require.Equal(t, "Hash123", block.Hash)
	require.EqualValues(t, 1700000000, block.Timestamp)
	require.Equal(t, entities.ChainSolana, block.Chain)
}

func TestSolanaAdapter_GetBlockBySlot(t *testing.T) {
	srv := newSolanaRPC(t, map[string]interface{}{
		"getBlock": map[string]interface{}{"blockhash": "Hash456"},
	})
	a := NewSolanaAdapter(srv.URL)

	slot := uint64(42)
	block := a.GetBlock(context.Background(), &slot)
	require.NotNil(t, block)
	require.EqualValues(t, 42, block.Number)
	require.Equal(t, "Hash456", block.Hash)
	require.Zero(t, block.Timestamp)
}
