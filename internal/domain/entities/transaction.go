package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// RiskLevel classifies how suspicious a transaction or alert is
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Transaction is the canonical, chain-independent transaction record.
// Identity is Hash, globally unique. Optional fields use null types so a
// chain without the concept (gas on solana) stores NULL, not zero.
type Transaction struct {
	ID                    uuid.UUID   `json:"id"`
	Hash                  string      `json:"hash"`
	WalletAddress         string      `json:"walletAddress"`
	Chain                 ChainID     `json:"chain"`
	FromAddress           null.String `json:"fromAddress,omitempty"`
	ToAddress             null.String `json:"toAddress,omitempty"`
	Amount                float64     `json:"amount"`
	Status                string      `json:"status"`
	Timestamp             null.Int64  `json:"timestamp,omitempty"`
	BlockNumber           null.Int64  `json:"blockNumber,omitempty"`
	BlockHash             null.String `json:"blockHash,omitempty"`
	GasUsed               null.Int64  `json:"gasUsed,omitempty"`
	GasPrice              null.Int64  `json:"gasPrice,omitempty"`
	InputData             null.String `json:"inputData,omitempty"`
	IsContractInteraction bool        `json:"isContractInteraction"`
	ContractAddress       null.String `json:"contractAddress,omitempty"`
	AnomalyScore          float64     `json:"anomalyScore"`
	RiskLevel             RiskLevel   `json:"riskLevel"`
	CreatedAt             time.Time   `json:"createdAt"`
}

// ScoreResult is the output of anomaly scoring for a single transaction
type ScoreResult struct {
	AnomalyScore        float64   `json:"anomalyScore"`
	ContributingFactors []string  `json:"contributingFactors"`
	RiskLevel           RiskLevel `json:"riskLevel"`
}

// SyncResult reports the outcome of one wallet sync batch
type SyncResult struct {
	WalletAddress string  `json:"walletAddress"`
	Chain         ChainID `json:"chain"`
	SyncedCount   int     `json:"syncedCount"`
	SkippedCount  int     `json:"skippedCount"`
	AlertCount    int     `json:"alertCount"`
}

// TransactionFilter narrows transaction list queries
type TransactionFilter struct {
	WalletAddress string
	Chain         ChainID
	Limit         int
}
