package repositories

import (
	"context"

	"github.com/google/uuid"
	"wallet-sentinel.backend/internal/domain/entities"
)

// AlertRuleRepository defines alert rule data operations
type AlertRuleRepository interface {
	Create(ctx context.Context, rule *entities.AlertRule) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.AlertRule, error)
	List(ctx context.Context, enabledOnly bool) ([]*entities.AlertRule, error)
	Update(ctx context.Context, rule *entities.AlertRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}
