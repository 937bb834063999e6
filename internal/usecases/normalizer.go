package usecases

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/volatiletech/null/v8"
	"wallet-sentinel.backend/internal/domain/entities"
)

// TransactionNormalizer converts chain-specific raw transaction payloads
// into the canonical Transaction shape. Normalization is pure and never
// fails: a missing field maps to a null/zero value. Fields a chain has no
// concept of (gas on solana) stay unset so "not applicable" is
// distinguishable from zero.
type TransactionNormalizer struct{}

// NewTransactionNormalizer creates a new normalizer
func NewTransactionNormalizer() *TransactionNormalizer {
	return &TransactionNormalizer{}
}

// Normalize maps a raw transaction into the canonical shape for the chain
func (n *TransactionNormalizer) Normalize(raw entities.RawTransaction, chain entities.ChainID) *entities.Transaction {
	tx := &entities.Transaction{
		Chain:     chain,
		Status:    "unknown",
		RiskLevel: entities.RiskLow,
	}

	switch chain {
	case entities.ChainEthereum:
		n.normalizeEthereum(raw, tx)
	case entities.ChainSolana:
		n.normalizeSolana(raw, tx)
	}

	if tx.IsContractInteraction {
		// The destination of a contract interaction is the contract itself.
		tx.ContractAddress = tx.ToAddress
	}

	return tx
}

func (n *TransactionNormalizer) normalizeEthereum(raw entities.RawTransaction, tx *entities.Transaction) {
	tx.Hash = firstString(raw, "hash", "transactionHash")
	tx.FromAddress = nullAddress(firstString(raw, "from", "fromAddress"))
	tx.ToAddress = nullAddress(firstString(raw, "to", "toAddress"))
	tx.Amount = toFloat(firstValue(raw, "value"))
	if status := firstString(raw, "status"); status != "" {
		tx.Status = status
	}
	tx.Timestamp = nullInt(firstValue(raw, "blockTime", "timestamp"))
	tx.BlockNumber = nullInt(firstValue(raw, "blockNumber"))
	if blockHash := firstString(raw, "blockHash"); blockHash != "" {
		tx.BlockHash = null.StringFrom(blockHash)
	}
	tx.GasUsed = nullInt(firstValue(raw, "gasUsed"))
	tx.GasPrice = nullInt(firstValue(raw, "gasPrice"))

	input := firstString(raw, "input")
	if input != "" {
		tx.InputData = null.StringFrom(input)
	}
	// Anything beyond the bare "0x" marker means a contract call.
	tx.IsContractInteraction = len(strings.TrimPrefix(input, "0x")) > 0
}

func (n *TransactionNormalizer) normalizeSolana(raw entities.RawTransaction, tx *entities.Transaction) {
	tx.Hash = firstString(raw, "signature")
	tx.Amount = toFloat(firstValue(raw, "amount"))
	if status := firstString(raw, "status"); status != "" {
		tx.Status = status
	}
	tx.Timestamp = nullInt(firstValue(raw, "block_time"))
	tx.BlockNumber = nullInt(firstValue(raw, "slot"))
	// No gas, calldata or from/to concept in this payload shape.
}

// NormalizeAddress canonicalizes an address: trimmed, lowercase
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

func nullAddress(address string) null.String {
	if address == "" {
		return null.String{}
	}
	return null.StringFrom(NormalizeAddress(address))
}

func firstValue(raw entities.RawTransaction, keys ...string) interface{} {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(raw entities.RawTransaction, keys ...string) string {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func toFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	case json.Number:
		f, _ := val.Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func nullInt(v interface{}) null.Int64 {
	switch val := v.(type) {
	case int:
		return null.Int64From(int64(val))
	case int64:
		return null.Int64From(val)
	case uint64:
		return null.Int64From(int64(val))
	case float64:
		return null.Int64From(int64(val))
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			return null.Int64{}
		}
		return null.Int64From(i)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return null.Int64{}
		}
		return null.Int64From(i)
	}
	return null.Int64{}
}
