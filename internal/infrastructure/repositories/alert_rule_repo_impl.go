package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"wallet-sentinel.backend/internal/domain/entities"
	domainerrors "wallet-sentinel.backend/internal/domain/errors"
	"wallet-sentinel.backend/internal/domain/repositories"
	"wallet-sentinel.backend/internal/infrastructure/models"
)

// alertRuleRepo implements repositories.AlertRuleRepository
type alertRuleRepo struct {
	db *gorm.DB
}

// NewAlertRuleRepository creates a new alert rule repository
func NewAlertRuleRepository(db *gorm.DB) repositories.AlertRuleRepository {
	return &alertRuleRepo{db: db}
}

// Create creates a new alert rule
func (r *alertRuleRepo) Create(ctx context.Context, rule *entities.AlertRule) error {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	now := time.Now()
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	rule.UpdatedAt = now

	return r.db.WithContext(ctx).Create(r.toModel(rule)).Error
}

// GetByID gets an alert rule by ID
func (r *alertRuleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.AlertRule, error) {
	var m models.AlertRule
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List gets alert rules, optionally only enabled ones
func (r *alertRuleRepo) List(ctx context.Context, enabledOnly bool) ([]*entities.AlertRule, error) {
	query := r.db.WithContext(ctx).Model(&models.AlertRule{})
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}

	var ms []models.AlertRule
	if err := query.Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}

	rules := make([]*entities.AlertRule, 0, len(ms))
	for i := range ms {
		rules = append(rules, r.toEntity(&ms[i]))
	}
	return rules, nil
}

// Update updates an alert rule
func (r *alertRuleRepo) Update(ctx context.Context, rule *entities.AlertRule) error {
	rule.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(&models.AlertRule{}).
		Where("id = ?", rule.ID).
		Updates(map[string]interface{}{
			"name":       rule.Name,
			"threshold":  rule.Threshold.Ptr(),
			"enabled":    rule.Enabled,
			"updated_at": rule.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes an alert rule
func (r *alertRuleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.AlertRule{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *alertRuleRepo) toModel(rule *entities.AlertRule) *models.AlertRule {
	return &models.AlertRule{
		ID:         rule.ID,
		Name:       rule.Name,
		RuleType:   string(rule.RuleType),
		Threshold:  rule.Threshold.Ptr(),
		Expression: rule.Expression.Ptr(),
		Enabled:    rule.Enabled,
		CreatedAt:  rule.CreatedAt,
		UpdatedAt:  rule.UpdatedAt,
	}
}

func (r *alertRuleRepo) toEntity(m *models.AlertRule) *entities.AlertRule {
	return &entities.AlertRule{
		ID:         m.ID,
		Name:       m.Name,
		RuleType:   entities.RuleType(m.RuleType),
		Threshold:  null.Float64FromPtr(m.Threshold),
		Expression: null.StringFromPtr(m.Expression),
		Enabled:    m.Enabled,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
