package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"wallet-sentinel.backend/internal/domain/entities"
	domainerrors "wallet-sentinel.backend/internal/domain/errors"
	"wallet-sentinel.backend/internal/domain/repositories"
	"wallet-sentinel.backend/pkg/logger"
)

// AlertUsecase handles alert and alert-rule business logic
type AlertUsecase struct {
	alertRepo  repositories.AlertRepository
	ruleRepo   repositories.AlertRuleRepository
	ruleEngine *RuleEngine
}

// NewAlertUsecase creates a new alert usecase
func NewAlertUsecase(alertRepo repositories.AlertRepository, ruleRepo repositories.AlertRuleRepository, ruleEngine *RuleEngine) *AlertUsecase {
	return &AlertUsecase{alertRepo: alertRepo, ruleRepo: ruleRepo, ruleEngine: ruleEngine}
}

// ListAlerts returns alerts matching the filter
func (u *AlertUsecase) ListAlerts(ctx context.Context, filter entities.AlertFilter) ([]*entities.Alert, error) {
	return u.alertRepo.List(ctx, filter)
}

// GetAlert returns one alert
func (u *AlertUsecase) GetAlert(ctx context.Context, id uuid.UUID) (*entities.Alert, error) {
	return u.alertRepo.GetByID(ctx, id)
}

// ResolveAlert transitions an alert to resolved
func (u *AlertUsecase) ResolveAlert(ctx context.Context, id uuid.UUID) (*entities.Alert, error) {
	alert, err := u.alertRepo.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "alert resolved", zap.String("alert_id", id.String()))
	return alert, nil
}

// ListRules returns alert rules
func (u *AlertUsecase) ListRules(ctx context.Context, enabledOnly bool) ([]*entities.AlertRule, error) {
	return u.ruleRepo.List(ctx, enabledOnly)
}

// CreateRule validates, stores and hot-loads a new alert rule
func (u *AlertUsecase) CreateRule(ctx context.Context, input *entities.CreateAlertRuleInput) (*entities.AlertRule, error) {
	ruleType := entities.RuleType(input.RuleType)
	switch ruleType {
	case entities.RuleTypeTransaction, entities.RuleTypeBalance, entities.RuleTypeContract, entities.RuleTypeAnomaly:
	default:
		return nil, domainerrors.ErrInvalidRule
	}

	rule := &entities.AlertRule{
		Name:      input.Name,
		RuleType:  ruleType,
		Threshold: null.Float64FromPtr(input.Threshold),
		Enabled:   true,
	}
	if input.Enabled != nil {
		rule.Enabled = *input.Enabled
	}
	if input.Expression != "" {
		predicate, err := parsePredicate(input.Expression)
		if err != nil {
			return nil, domainerrors.ErrInvalidRule
		}
		if err := predicate.usableFor(ruleType); err != nil {
			return nil, domainerrors.ErrInvalidRule
		}
		rule.Expression = null.StringFrom(input.Expression)
	} else if (ruleType == entities.RuleTypeTransaction || ruleType == entities.RuleTypeBalance) && input.Threshold == nil {
		// These rule types compare against a threshold; without one the
		// rule could never be evaluated.
		return nil, domainerrors.ErrInvalidRule
	}

	if err := u.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}

	u.reloadEngine(ctx)
	return rule, nil
}

// UpdateRule updates a rule and refreshes the engine cache
func (u *AlertUsecase) UpdateRule(ctx context.Context, id uuid.UUID, input *entities.UpdateAlertRuleInput) (*entities.AlertRule, error) {
	rule, err := u.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		rule.Name = input.Name
	}
	if input.Threshold != nil {
		rule.Threshold = null.Float64From(*input.Threshold)
	}
	if input.Enabled != nil {
		rule.Enabled = *input.Enabled
	}

	if err := u.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}

	u.reloadEngine(ctx)
	return rule, nil
}

// DeleteRule removes a rule and refreshes the engine cache
func (u *AlertUsecase) DeleteRule(ctx context.Context, id uuid.UUID) error {
	if err := u.ruleRepo.Delete(ctx, id); err != nil {
		return err
	}
	u.reloadEngine(ctx)
	return nil
}

func (u *AlertUsecase) reloadEngine(ctx context.Context) {
	if err := u.ruleEngine.Reload(ctx); err != nil {
		logger.Error(ctx, "failed to reload rule engine after rule change", zap.Error(err))
	}
}
