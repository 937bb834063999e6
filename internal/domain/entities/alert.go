package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// RuleType selects which evaluation entry point a rule participates in
type RuleType string

const (
	RuleTypeTransaction RuleType = "transaction"
	RuleTypeBalance     RuleType = "balance"
	RuleTypeContract    RuleType = "contract"
	RuleTypeAnomaly     RuleType = "anomaly"
)

// AlertStatus is the lifecycle state of an alert
type AlertStatus string

const (
	AlertStatusPending  AlertStatus = "pending"
	AlertStatusResolved AlertStatus = "resolved"
)

// AlertRule is a stored predicate over transactions or balances.
// Threshold is required for transaction and balance rules and optional for
// anomaly rules (defaulting to 3x the history mean); contract rules ignore
// it. Expression optionally carries a rule-body string such as
// "value > 1000000000000000000" or "count > 10 in 3600", parsed once at
// engine load into a typed predicate.
type AlertRule struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	RuleType   RuleType     `json:"ruleType"`
	Threshold  null.Float64 `json:"threshold,omitempty"`
	Expression null.String  `json:"expression,omitempty"`
	Enabled    bool         `json:"enabled"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// CreateAlertRuleInput represents input for creating an alert rule
type CreateAlertRuleInput struct {
	Name       string   `json:"name" binding:"required"`
	RuleType   string   `json:"ruleType" binding:"required"`
	Threshold  *float64 `json:"threshold"`
	Expression string   `json:"expression"`
	Enabled    *bool    `json:"enabled"`
}

// UpdateAlertRuleInput represents input for updating an alert rule
type UpdateAlertRuleInput struct {
	Name      string   `json:"name"`
	Threshold *float64 `json:"threshold"`
	Enabled   *bool    `json:"enabled"`
}

// Alert is a persisted record of a rule firing, pending operator resolution
type Alert struct {
	ID              uuid.UUID   `json:"id"`
	WalletAddress   string      `json:"walletAddress"`
	Chain           ChainID     `json:"chain"`
	AlertType       RuleType    `json:"alertType"`
	Message         string      `json:"message"`
	RiskLevel       RiskLevel   `json:"riskLevel"`
	TransactionHash null.String `json:"transactionHash,omitempty"`
	Status          AlertStatus `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	ResolvedAt      null.Time   `json:"resolvedAt,omitempty"`
}

// AlertFilter narrows alert list queries
type AlertFilter struct {
	WalletAddress string
	Chain         ChainID
	Status        AlertStatus
	Limit         int
}
