package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"wallet-sentinel.backend/internal/domain/entities"
	domainerrors "wallet-sentinel.backend/internal/domain/errors"
	"wallet-sentinel.backend/internal/domain/repositories"
	"wallet-sentinel.backend/internal/infrastructure/models"
)

// walletRepo implements repositories.WalletRepository
type walletRepo struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) repositories.WalletRepository {
	return &walletRepo{db: db}
}

// Create registers a wallet, idempotent on (address, chain)
func (r *walletRepo) Create(ctx context.Context, wallet *entities.Wallet) (bool, error) {
	if wallet.ID == uuid.Nil {
		wallet.ID = uuid.New()
	}
	now := time.Now()
	if wallet.CreatedAt.IsZero() {
		wallet.CreatedAt = now
	}
	wallet.UpdatedAt = now
	wallet.Address = normalizeAddress(wallet.Address)

	m := r.toModel(wallet)
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}, {Name: "chain"}},
		DoNothing: true,
	}).Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetByAddress gets a wallet by its (address, chain) identity
func (r *walletRepo) GetByAddress(ctx context.Context, address string, chain entities.ChainID) (*entities.Wallet, error) {
	var m models.Wallet
	err := r.db.WithContext(ctx).
		Where("address = ? AND chain = ?", normalizeAddress(address), string(chain)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List gets wallets, optionally filtered by chain and active flag
func (r *walletRepo) List(ctx context.Context, chain entities.ChainID, activeOnly bool) ([]*entities.Wallet, error) {
	query := r.db.WithContext(ctx).Model(&models.Wallet{})
	if chain != "" {
		query = query.Where("chain = ?", string(chain))
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var ms []models.Wallet
	if err := query.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	wallets := make([]*entities.Wallet, 0, len(ms))
	for i := range ms {
		wallets = append(wallets, r.toEntity(&ms[i]))
	}
	return wallets, nil
}

// Update updates wallet metadata
func (r *walletRepo) Update(ctx context.Context, wallet *entities.Wallet) error {
	wallet.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(&models.Wallet{}).
		Where("address = ? AND chain = ?", normalizeAddress(wallet.Address), string(wallet.Chain)).
		Updates(map[string]interface{}{
			"name":        wallet.Name,
			"description": wallet.Description,
			"is_active":   wallet.IsActive,
			"updated_at":  wallet.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Deactivate soft-disables a wallet
func (r *walletRepo) Deactivate(ctx context.Context, address string, chain entities.ChainID) error {
	res := r.db.WithContext(ctx).Model(&models.Wallet{}).
		Where("address = ? AND chain = ?", normalizeAddress(address), string(chain)).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *walletRepo) toModel(w *entities.Wallet) *models.Wallet {
	return &models.Wallet{
		ID:          w.ID,
		Address:     w.Address,
		Chain:       string(w.Chain),
		Name:        w.Name,
		Description: w.Description,
		IsActive:    w.IsActive,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func (r *walletRepo) toEntity(m *models.Wallet) *entities.Wallet {
	return &entities.Wallet{
		ID:          m.ID,
		Address:     m.Address,
		Chain:       entities.ChainID(m.Chain),
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// normalizeAddress canonicalizes an address for storage and lookup
func normalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
