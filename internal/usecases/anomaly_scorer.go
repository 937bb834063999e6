package usecases

import (
	"wallet-sentinel.backend/internal/domain/entities"
)

// Scoring factor weights. The three weights sum to 1.0, so the additive
// score is naturally bounded to [0, 1].
const (
	largeAmountWeight  = 0.5
	unfamiliarWeight   = 0.3
	frequencyWeight    = 0.2
	largeAmountFactor  = 3.0
	frequencyWindowSec = 3600
	frequencyThreshold = 10
)

// Risk tier boundaries on the anomaly score
const (
	highRiskScore   = 0.8
	mediumRiskScore = 0.4
)

// AnomalyScorer computes a deterministic, explainable anomaly score for a
// transaction relative to its wallet's history. Rule-based on purpose:
// every fired factor is named in the result so scores are auditable.
type AnomalyScorer struct{}

// NewAnomalyScorer creates a new anomaly scorer
func NewAnomalyScorer() *AnomalyScorer {
	return &AnomalyScorer{}
}

// Score computes the anomaly score and risk tier for tx given history
func (s *AnomalyScorer) Score(tx *entities.Transaction, history []*entities.Transaction) entities.ScoreResult {
	score := 0.0
	factors := []string{}

	// Large amount relative to history mean. Cannot fire on empty history.
	if len(history) > 0 {
		if tx.Amount > largeAmountFactor*meanAmount(history) {
			score += largeAmountWeight
			factors = append(factors, "large_amount")
		}
	}

	// Destination never seen before in this wallet's history.
	if tx.ToAddress.Valid && !isFamiliarAddress(tx.ToAddress.String, history) {
		score += unfamiliarWeight
		factors = append(factors, "unfamiliar_counterparty")
	}

	// High transaction frequency in the trailing window.
	if isFrequentActivity(tx, history) {
		score += frequencyWeight
		factors = append(factors, "high_frequency")
	}

	return entities.ScoreResult{
		AnomalyScore:        score,
		ContributingFactors: factors,
		RiskLevel:           RiskLevelForScore(score),
	}
}

// IsAnomalous is the rule-engine-facing check: the amount exceeds
// threshold times the history mean. Distinct from the persisted score so
// callers can read the raw score even when no rule fires. Never fires on
// empty history.
func (s *AnomalyScorer) IsAnomalous(tx *entities.Transaction, history []*entities.Transaction, threshold float64) bool {
	if len(history) == 0 {
		return false
	}
	if threshold <= 0 {
		threshold = largeAmountFactor
	}
	return tx.Amount > threshold*meanAmount(history)
}

// RiskLevelForScore maps an anomaly score to its risk tier
func RiskLevelForScore(score float64) entities.RiskLevel {
	switch {
	case score >= highRiskScore:
		return entities.RiskHigh
	case score >= mediumRiskScore:
		return entities.RiskMedium
	default:
		return entities.RiskLow
	}
}

func meanAmount(history []*entities.Transaction) float64 {
	if len(history) == 0 {
		return 0
	}
	total := 0.0
	for _, tx := range history {
		total += tx.Amount
	}
	return total / float64(len(history))
}

func isFamiliarAddress(address string, history []*entities.Transaction) bool {
	if address == "" {
		return false
	}
	for _, tx := range history {
		if tx.FromAddress.Valid && tx.FromAddress.String == address {
			return true
		}
		if tx.ToAddress.Valid && tx.ToAddress.String == address {
			return true
		}
	}
	return false
}

func isFrequentActivity(tx *entities.Transaction, history []*entities.Transaction) bool {
	if !tx.Timestamp.Valid {
		return false
	}
	end := tx.Timestamp.Int64
	count := 0
	for _, prev := range history {
		if !prev.Timestamp.Valid {
			continue
		}
		diff := end - prev.Timestamp.Int64
		if diff >= 0 && diff < frequencyWindowSec {
			count++
		}
	}
	return count > frequencyThreshold
}
