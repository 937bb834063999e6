package blockchain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"wallet-sentinel.backend/internal/domain/entities"
	"wallet-sentinel.backend/pkg/logger"
)

var weiPerEther = new(big.Float).SetFloat64(1e18)

var dialEVMClient = ethclient.Dial

// TxFetchFunc retrieves raw transaction history for an address. Standard
// execution nodes expose no per-account history RPC, so the fetch strategy
// (indexer, explorer API, test fixture) is injected.
type TxFetchFunc func(ctx context.Context, address string, limit int) ([]entities.RawTransaction, error)

// EVMAdapter implements Adapter for EVM-compatible chains via go-ethereum
type EVMAdapter struct {
	chain   entities.ChainID
	client  *ethclient.Client
	rpcURL  string
	txFetch TxFetchFunc
}

// NewEVMAdapter creates an adapter connected to the given RPC endpoint
func NewEVMAdapter(chain entities.ChainID, rpcURL string, txFetch TxFetchFunc) (*EVMAdapter, error) {
	client, err := dialEVMClient(rpcURL)
	if err != nil {
		return nil, err
	}
	return &EVMAdapter{
		chain:   chain,
		client:  client,
		rpcURL:  rpcURL,
		txFetch: txFetch,
	}, nil
}

// NewEVMAdapterWithClient wires a pre-built client, for tests
func NewEVMAdapterWithClient(chain entities.ChainID, client *ethclient.Client, txFetch TxFetchFunc) *EVMAdapter {
	return &EVMAdapter{chain: chain, client: client, txFetch: txFetch}
}

// Chain returns the chain this adapter talks to
func (a *EVMAdapter) Chain() entities.ChainID {
	return a.chain
}

// GetBalance returns the native or ERC-20 balance in whole-token units
func (a *EVMAdapter) GetBalance(ctx context.Context, address, tokenAddress string) (float64, bool) {
	var raw *big.Int
	var err error

	if tokenAddress == "" {
		raw, err = a.client.BalanceAt(ctx, common.HexToAddress(address), nil)
	} else {
		raw, err = a.tokenBalance(ctx, tokenAddress, address)
	}
	if err != nil {
		logger.Warn(ctx, "EVM balance query failed",
			zap.String("chain", string(a.chain)),
			zap.String("address", address),
			zap.Error(err),
		)
		return 0, false
	}

	value, _ := new(big.Float).Quo(new(big.Float).SetInt(raw), weiPerEther).Float64()
	return value, true
}

// tokenBalance performs a balanceOf(address) view call
func (a *EVMAdapter) tokenBalance(ctx context.Context, tokenAddress, ownerAddress string) (*big.Int, error) {
	token := common.HexToAddress(tokenAddress)
	owner := common.HexToAddress(ownerAddress)

	// balanceOf(address) selector: 0x70a08231
	data := append(common.Hex2Bytes("70a08231"), common.LeftPadBytes(owner.Bytes(), 32)...)

	result, err := a.client.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(result), nil
}

// GetTransactions returns raw transaction history via the injected fetcher
func (a *EVMAdapter) GetTransactions(ctx context.Context, address string, limit int) []entities.RawTransaction {
	if a.txFetch == nil {
		logger.Debug(ctx, "no transaction fetcher configured for EVM chain",
			zap.String("chain", string(a.chain)))
		return nil
	}

	txs, err := a.txFetch(ctx, address, limit)
	if err != nil {
		logger.Warn(ctx, "EVM transaction fetch failed",
			zap.String("chain", string(a.chain)),
			zap.String("address", address),
			zap.Error(err),
		)
		return nil
	}
	return txs
}

// GetBlock returns header info for the given block, or the latest when nil
func (a *EVMAdapter) GetBlock(ctx context.Context, number *uint64) *entities.BlockInfo {
	var target *big.Int
	if number != nil {
		target = new(big.Int).SetUint64(*number)
	}

	header, err := a.client.HeaderByNumber(ctx, target)
	if err != nil {
		logger.Warn(ctx, "EVM block query failed",
			zap.String("chain", string(a.chain)),
			zap.Error(err),
		)
		return nil
	}

	return &entities.BlockInfo{
		Number:    header.Number.Uint64(),
		Hash:      header.Hash().Hex(),
		Timestamp: int64(header.Time),
		Chain:     a.chain,
	}
}

// Close closes the underlying client connection
func (a *EVMAdapter) Close() {
	if a.client != nil {
		a.client.Close()
	}
}
