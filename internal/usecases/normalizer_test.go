package usecases

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"wallet-sentinel.backend/internal/domain/entities"
)

func TestNormalizer_EthereumFullPayload(t *testing.T) {
	n := NewTransactionNormalizer()

	raw := entities.RawTransaction{
		"hash":        "0xHASH",
		"from":        "0xFROM",
		"to":          "0xTO",
		"value":       12.5,
		"status":      "success",
		"blockTime":   int64(1700000000),
		"blockNumber": int64(123456),
		"blockHash":   "0xblock",
		"gasUsed":     int64(21000),
		"gasPrice":    int64(30),
		"input":       "0x",
	}

	tx := n.Normalize(raw, entities.ChainEthereum)
	require.Equal(t, "0xHASH", tx.Hash)
	require.Equal(t, "0xfrom", tx.FromAddress.String)
	require.Equal(t, "0xto", tx.ToAddress.String)
	require.Equal(t, 12.5, tx.Amount)
	require.Equal(t, "success", tx.Status)
	require.EqualValues(t, 1700000000, tx.Timestamp.Int64)
	require.EqualValues(t, 123456, tx.BlockNumber.Int64)
	require.Equal(t, "0xblock", tx.BlockHash.String)
	require.EqualValues(t, 21000, tx.GasUsed.Int64)
	require.EqualValues(t, 30, tx.GasPrice.Int64)
	require.False(t, tx.IsContractInteraction)
	require.False(t, tx.ContractAddress.Valid)
}

func TestNormalizer_EthereumAlternateKeys(t *testing.T) {
	n := NewTransactionNormalizer()

	raw := entities.RawTransaction{
		"transactionHash": "0xalt",
		"fromAddress":     "0xSender",
		"timestamp":       json.Number("1700000001"),
		"value":           json.Number("3.25"),
	}

	tx := n.Normalize(raw, entities.ChainEthereum)
	require.Equal(t, "0xalt", tx.Hash)
	require.Equal(t, "0xsender", tx.FromAddress.String)
	require.EqualValues(t, 1700000001, tx.Timestamp.Int64)
	require.Equal(t, 3.25, tx.Amount)
}

func TestNormalizer_EthereumContractInteraction(t *testing.T) {
	n := NewTransactionNormalizer()

	raw := entities.RawTransaction{
		"hash":  "0xcall",
		"to":    "0xContract",
		"input": "0xa9059cbb0000",
	}

	tx := n.Normalize(raw, entities.ChainEthereum)
	require.True(t, tx.IsContractInteraction)
	require.Equal(t, "0xa9059cbb0000", tx.InputData.String)
	require.Equal(t, "0xcontract", tx.ContractAddress.String)
}

func TestNormalizer_SolanaPayload(t *testing.T) {
	n := NewTransactionNormalizer()

	raw := entities.RawTransaction{
		"signature":  "5sig",
		"amount":     0.75,
		"status":     "success",
		"block_time": int64(1700000100),
		"slot":       int64(250000000),
	}

	tx := n.Normalize(raw, entities.ChainSolana)
	require.Equal(t, "5sig", tx.Hash)
	require.Equal(t, 0.75, tx.Amount)
	require.EqualValues(t, 1700000100, tx.Timestamp.Int64)
	require.EqualValues(t, 250000000, tx.BlockNumber.Int64)
	// No gas concept on solana payloads: unset, not zero.
	require.False(t, tx.GasUsed.Valid)
	require.False(t, tx.GasPrice.Valid)
	require.False(t, tx.FromAddress.Valid)
	require.False(t, tx.IsContractInteraction)
}

func TestNormalizer_MissingFieldsNeverFail(t *testing.T) {
	n := NewTransactionNormalizer()

	tx := n.Normalize(entities.RawTransaction{}, entities.ChainEthereum)
	require.Empty(t, tx.Hash)
	require.Equal(t, "unknown", tx.Status)
	require.Zero(t, tx.Amount)
	require.False(t, tx.Timestamp.Valid)

	// Malformed numerics degrade to null/zero.
	tx = n.Normalize(entities.RawTransaction{
		"hash":      "0xbad",
		"value":     "not-a-number",
		"blockTime": "later",
	}, entities.ChainEthereum)
	require.Zero(t, tx.Amount)
	require.False(t, tx.Timestamp.Valid)
}

func TestNormalizeAddress(t *testing.T) {
	require.Equal(t, "0xabcdef", NormalizeAddress("  0xABCdef "))
	require.Equal(t, "", NormalizeAddress("   "))
}
