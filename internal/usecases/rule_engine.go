package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"wallet-sentinel.backend/internal/domain/entities"
	"wallet-sentinel.backend/internal/domain/repositories"
	"wallet-sentinel.backend/pkg/logger"
)

// loadedRule is an enabled rule with its expression pre-parsed. Rules whose
// expression fails to parse, or which need a threshold and have none, are
// dropped at load with an operator-facing log line; they never abort
// evaluation of sibling rules.
type loadedRule struct {
	rule      *entities.AlertRule
	predicate *rulePredicate
}

// RuleEngine evaluates normalized transactions and balance readings against
// the enabled alert rules. The rule set is cached at load; mutations to
// rules require an explicit Reload.
type RuleEngine struct {
	ruleRepo repositories.AlertRuleRepository
	scorer   *AnomalyScorer

	mu    sync.RWMutex
	rules []loadedRule
}

// NewRuleEngine creates a rule engine and loads the enabled rules
func NewRuleEngine(ctx context.Context, ruleRepo repositories.AlertRuleRepository, scorer *AnomalyScorer) *RuleEngine {
	e := &RuleEngine{ruleRepo: ruleRepo, scorer: scorer}
	if err := e.Reload(ctx); err != nil {
		logger.Error(ctx, "failed to load alert rules, starting with empty set", zap.Error(err))
	}
	return e
}

// Reload re-reads the enabled rules from storage and re-parses expressions
func (e *RuleEngine) Reload(ctx context.Context) error {
	rules, err := e.ruleRepo.List(ctx, true)
	if err != nil {
		return err
	}

	loaded := make([]loadedRule, 0, len(rules))
	for _, rule := range rules {
		lr := loadedRule{rule: rule}

		if rule.Expression.Valid && rule.Expression.String != "" {
			predicate, err := parsePredicate(rule.Expression.String)
			if err != nil {
				logger.Warn(ctx, "skipping rule with malformed expression",
					zap.String("rule", rule.Name),
					zap.String("rule_id", rule.ID.String()),
					zap.Error(err),
				)
				continue
			}
			if err := predicate.usableFor(rule.RuleType); err != nil {
				logger.Warn(ctx, "skipping rule whose expression cannot be evaluated for its type",
					zap.String("rule", rule.Name),
					zap.String("rule_id", rule.ID.String()),
					zap.String("rule_type", string(rule.RuleType)),
					zap.Error(err),
				)
				continue
			}
			lr.predicate = predicate
		} else if e.thresholdRequired(rule.RuleType) && !rule.Threshold.Valid {
			logger.Warn(ctx, "skipping rule with missing required threshold",
				zap.String("rule", rule.Name),
				zap.String("rule_id", rule.ID.String()),
				zap.String("rule_type", string(rule.RuleType)),
			)
			continue
		}

		loaded = append(loaded, lr)
	}

	e.mu.Lock()
	e.rules = loaded
	e.mu.Unlock()

	logger.Info(ctx, "alert rules loaded", zap.Int("count", len(loaded)))
	return nil
}

// Rules returns the currently cached rules
func (e *RuleEngine) Rules() []*entities.AlertRule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*entities.AlertRule, 0, len(e.rules))
	for _, lr := range e.rules {
		out = append(out, lr.rule)
	}
	return out
}

func (e *RuleEngine) thresholdRequired(ruleType entities.RuleType) bool {
	return ruleType == entities.RuleTypeTransaction || ruleType == entities.RuleTypeBalance
}

func (e *RuleEngine) snapshot(ruleType entities.RuleType) []loadedRule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []loadedRule
	for _, lr := range e.rules {
		if lr.rule.RuleType == ruleType {
			out = append(out, lr)
		}
	}
	return out
}

// EvaluateTransaction fires transaction-type rules on amount above threshold.
// Severity is high when the amount exceeds twice the threshold.
func (e *RuleEngine) EvaluateTransaction(tx *entities.Transaction) []*entities.Alert {
	var alerts []*entities.Alert
	for _, lr := range e.snapshot(entities.RuleTypeTransaction) {
		if lr.predicate != nil {
			if !lr.predicate.matches(tx, nil) {
				continue
			}
			severity := entities.RiskMedium
			if lr.predicate.kind == predicateValue && tx.Amount > 2*lr.predicate.operand {
				severity = entities.RiskHigh
			}
			alerts = append(alerts, e.draft(tx, entities.RuleTypeTransaction, severity,
				fmt.Sprintf("transaction matched rule %q: amount %.6f", lr.rule.Name, tx.Amount)))
			continue
		}

		threshold := lr.rule.Threshold.Float64
		if tx.Amount > threshold {
			severity := entities.RiskMedium
			if tx.Amount > 2*threshold {
				severity = entities.RiskHigh
			}
			alerts = append(alerts, e.draft(tx, entities.RuleTypeTransaction, severity,
				fmt.Sprintf("transaction amount above threshold: %.6f > %.6f", tx.Amount, threshold)))
		}
	}
	return alerts
}

// EvaluateBalance fires balance-type rules on balance below threshold, or
// on the rule's value expression when one is set. Severity is high when the
// balance is below half the threshold (or half the expression operand).
func (e *RuleEngine) EvaluateBalance(address string, chain entities.ChainID, balance float64) []*entities.Alert {
	var alerts []*entities.Alert
	for _, lr := range e.snapshot(entities.RuleTypeBalance) {
		if lr.predicate != nil {
			if !lr.predicate.matchesValue(balance) {
				continue
			}
			severity := entities.RiskMedium
			if balance < 0.5*lr.predicate.operand {
				severity = entities.RiskHigh
			}
			alerts = append(alerts, e.balanceDraft(address, chain, severity,
				fmt.Sprintf("wallet balance matched rule %q: %.6f", lr.rule.Name, balance)))
			continue
		}

		if !lr.rule.Threshold.Valid {
			continue
		}
		threshold := lr.rule.Threshold.Float64
		if balance < threshold {
			severity := entities.RiskMedium
			if balance < 0.5*threshold {
				severity = entities.RiskHigh
			}
			alerts = append(alerts, e.balanceDraft(address, chain, severity,
				fmt.Sprintf("wallet balance below threshold: %.6f < %.6f", balance, threshold)))
		}
	}
	return alerts
}

func (e *RuleEngine) balanceDraft(address string, chain entities.ChainID, severity entities.RiskLevel, message string) *entities.Alert {
	return &entities.Alert{
		WalletAddress: NormalizeAddress(address),
		Chain:         chain,
		AlertType:     entities.RuleTypeBalance,
		Message:       message,
		RiskLevel:     severity,
		Status:        entities.AlertStatusPending,
	}
}

// EvaluateContract fires contract-type rules on any contract interaction
func (e *RuleEngine) EvaluateContract(tx *entities.Transaction) []*entities.Alert {
	if !tx.IsContractInteraction {
		return nil
	}

	var alerts []*entities.Alert
	for range e.snapshot(entities.RuleTypeContract) {
		alerts = append(alerts, e.draft(tx, entities.RuleTypeContract, entities.RiskMedium,
			fmt.Sprintf("contract interaction detected: %s", tx.ContractAddress.String)))
	}
	return alerts
}

// EvaluateAnomaly fires anomaly-type rules when the amount exceeds the
// rule threshold (default 3) times the wallet's history mean
func (e *RuleEngine) EvaluateAnomaly(tx *entities.Transaction, history []*entities.Transaction) []*entities.Alert {
	var alerts []*entities.Alert
	for _, lr := range e.snapshot(entities.RuleTypeAnomaly) {
		if lr.predicate != nil {
			if lr.predicate.matches(tx, history) {
				alerts = append(alerts, e.draft(tx, entities.RuleTypeAnomaly, entities.RiskHigh,
					fmt.Sprintf("anomalous activity matched rule %q", lr.rule.Name)))
			}
			continue
		}

		threshold := largeAmountFactor
		if lr.rule.Threshold.Valid {
			threshold = lr.rule.Threshold.Float64
		}
		if e.scorer.IsAnomalous(tx, history, threshold) {
			alerts = append(alerts, e.draft(tx, entities.RuleTypeAnomaly, entities.RiskHigh,
				fmt.Sprintf("anomalous transaction amount: %.6f (history mean %.6f)", tx.Amount, meanAmount(history))))
		}
	}
	return alerts
}

func (e *RuleEngine) draft(tx *entities.Transaction, ruleType entities.RuleType, severity entities.RiskLevel, message string) *entities.Alert {
	return &entities.Alert{
		WalletAddress:   tx.WalletAddress,
		Chain:           tx.Chain,
		AlertType:       ruleType,
		Message:         message,
		RiskLevel:       severity,
		TransactionHash: null.StringFrom(tx.Hash),
		Status:          entities.AlertStatusPending,
	}
}
