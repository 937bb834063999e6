package blockchain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"wallet-sentinel.backend/internal/domain/entities"
	"wallet-sentinel.backend/pkg/logger"
)

const lamportsPerSol = 1e9

// SolanaAdapter implements Adapter for Solana over plain JSON-RPC
type SolanaAdapter struct {
	rpcURL     string
	httpClient *http.Client
}

// NewSolanaAdapter creates an adapter for the given Solana RPC endpoint
func NewSolanaAdapter(rpcURL string) *SolanaAdapter {
	return &SolanaAdapter{
		rpcURL:     rpcURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Chain returns the chain this adapter talks to
func (a *SolanaAdapter) Chain() entities.ChainID {
	return entities.ChainSolana
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (a *SolanaAdapter) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.rpcURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return err
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}
	return json.Unmarshal(rpcResp.Result, out)
}

// GetBalance returns the SOL balance of an account. Token balances are not
// supported on this adapter; a token query reports unavailable.
func (a *SolanaAdapter) GetBalance(ctx context.Context, address, tokenAddress string) (float64, bool) {
	if tokenAddress != "" {
		logger.Debug(ctx, "token balances not supported on solana adapter",
			zap.String("token", tokenAddress))
		return 0, false
	}

	var result struct {
		Value uint64 `json:"value"`
	}
	if err := a.call(ctx, "getBalance", []interface{}{address}, &result); err != nil {
		logger.Warn(ctx, "solana balance query failed",
			zap.String("address", address),
			zap.Error(err),
		)
		return 0, false
	}
	return float64(result.Value) / lamportsPerSol, true
}

// GetTransactions returns recent transaction signatures for an address
func (a *SolanaAdapter) GetTransactions(ctx context.Context, address string, limit int) []entities.RawTransaction {
	if limit <= 0 {
		limit = 100
	}

	var sigs []struct {
		Signature string `json:"signature"`
		Slot      uint64 `json:"slot"`
		BlockTime *int64 `json:"blockTime"`
		Err       any    `json:"err"`
	}
	params := []interface{}{address, map[string]interface{}{"limit": limit}}
	if err := a.call(ctx, "getSignaturesForAddress", params, &sigs); err != nil {
		logger.Warn(ctx, "solana signature query failed",
			zap.String("address", address),
			zap.Error(err),
		)
		return nil
	}

	txs := make([]entities.RawTransaction, 0, len(sigs))
	for _, sig := range sigs {
		status := "success"
		if sig.Err != nil {
			status = "failed"
		}
		raw := entities.RawTransaction{
			"signature": sig.Signature,
			"slot":      sig.Slot,
			"status":    status,
		}
		if sig.BlockTime != nil {
			raw["block_time"] = *sig.BlockTime
		}
		txs = append(txs, raw)
	}
	return txs
}

// GetBlock returns slot info for the given slot, or the latest when nil
func (a *SolanaAdapter) GetBlock(ctx context.Context, number *uint64) *entities.BlockInfo {
	slot := uint64(0)
	if number != nil {
		slot = *number
	} else {
		if err := a.call(ctx, "getSlot", nil, &slot); err != nil {
			logger.Warn(ctx, "solana slot query failed", zap.Error(err))
			return nil
		}
	}

	var block struct {
		Blockhash string `json:"blockhash"`
		BlockTime *int64 `json:"blockTime"`
	}
	params := []interface{}{slot, map[string]interface{}{"transactionDetails": "none", "rewards": false}}
	if err := a.call(ctx, "getBlock", params, &block); err != nil {
		logger.Warn(ctx, "solana block query failed",
			zap.Uint64("slot", slot),
			zap.Error(err),
		)
		return nil
	}

	info := &entities.BlockInfo{
		Number: slot,
		Hash:   block.Blockhash,
		Chain:  entities.ChainSolana,
	}
	if block.BlockTime != nil {
		info.Timestamp = *block.BlockTime
	}
	return info
}
