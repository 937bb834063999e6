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

const defaultAlertLimit = 100

// alertRepo implements repositories.AlertRepository
type alertRepo struct {
	db *gorm.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *gorm.DB) repositories.AlertRepository {
	return &alertRepo{db: db}
}

// Create appends an alert row
func (r *alertRepo) Create(ctx context.Context, alert *entities.Alert) error {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now()
	}
	if alert.Status == "" {
		alert.Status = entities.AlertStatusPending
	}

	return r.db.WithContext(ctx).Create(r.toModel(alert)).Error
}

// GetByID gets an alert by ID
func (r *alertRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Alert, error) {
	var m models.Alert
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List gets alerts matching the filter, newest first
func (r *alertRepo) List(ctx context.Context, filter entities.AlertFilter) ([]*entities.Alert, error) {
	query := r.db.WithContext(ctx).Model(&models.Alert{})
	if filter.WalletAddress != "" {
		query = query.Where("wallet_address = ?", normalizeAddress(filter.WalletAddress))
	}
	if filter.Chain != "" {
		query = query.Where("chain = ?", string(filter.Chain))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultAlertLimit
	}

	var ms []models.Alert
	if err := query.Order("created_at DESC").Limit(limit).Find(&ms).Error; err != nil {
		return nil, err
	}

	alerts := make([]*entities.Alert, 0, len(ms))
	for i := range ms {
		alerts = append(alerts, r.toEntity(&ms[i]))
	}
	return alerts, nil
}

// Resolve marks an alert resolved; resolving twice is a no-op success
func (r *alertRepo) Resolve(ctx context.Context, id uuid.UUID) (*entities.Alert, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&models.Alert{}).
		Where("id = ? AND status = ?", id, string(entities.AlertStatusPending)).
		Updates(map[string]interface{}{
			"status":      string(entities.AlertStatusResolved),
			"resolved_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}

	// Either updated now or already resolved; a missing row is the only error.
	return r.GetByID(ctx, id)
}

func (r *alertRepo) toModel(a *entities.Alert) *models.Alert {
	return &models.Alert{
		ID:              a.ID,
		WalletAddress:   normalizeAddress(a.WalletAddress),
		Chain:           string(a.Chain),
		AlertType:       string(a.AlertType),
		Message:         a.Message,
		RiskLevel:       string(a.RiskLevel),
		TransactionHash: a.TransactionHash.Ptr(),
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
		ResolvedAt:      a.ResolvedAt.Ptr(),
	}
}

func (r *alertRepo) toEntity(m *models.Alert) *entities.Alert {
	return &entities.Alert{
		ID:              m.ID,
		WalletAddress:   m.WalletAddress,
		Chain:           entities.ChainID(m.Chain),
		AlertType:       entities.RuleType(m.AlertType),
		Message:         m.Message,
		RiskLevel:       entities.RiskLevel(m.RiskLevel),
		TransactionHash: null.StringFromPtr(m.TransactionHash),
		Status:          entities.AlertStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		ResolvedAt:      null.TimeFromPtr(m.ResolvedAt),
	}
}
