package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"wallet-sentinel.backend/internal/domain/entities"
	domainerrors "wallet-sentinel.backend/internal/domain/errors"
	"wallet-sentinel.backend/internal/domain/repositories"
	"wallet-sentinel.backend/internal/infrastructure/models"
)

const defaultTransactionLimit = 100

// transactionRepo implements repositories.TransactionRepository
type transactionRepo struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) repositories.TransactionRepository {
	return &transactionRepo{db: db}
}

// Create inserts a transaction, idempotent on hash
func (r *transactionRepo) Create(ctx context.Context, tx *entities.Transaction) (bool, error) {
	if tx.Hash == "" {
		return false, domainerrors.ErrInvalidInput
	}
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}

	m := r.toModel(tx)
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hash"}},
		DoNothing: true,
	}).Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetByHash gets a transaction by its hash
func (r *transactionRepo) GetByHash(ctx context.Context, hash string) (*entities.Transaction, error) {
	var m models.Transaction
	if err := r.db.WithContext(ctx).Where("hash = ?", hash).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List gets transactions matching the filter, newest first
func (r *transactionRepo) List(ctx context.Context, filter entities.TransactionFilter) ([]*entities.Transaction, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{})
	if filter.WalletAddress != "" {
		query = query.Where("wallet_address = ?", normalizeAddress(filter.WalletAddress))
	}
	if filter.Chain != "" {
		query = query.Where("chain = ?", string(filter.Chain))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultTransactionLimit
	}

	var ms []models.Transaction
	err := query.Order("timestamp DESC").Limit(limit).Find(&ms).Error
	if err != nil {
		return nil, err
	}

	txs := make([]*entities.Transaction, 0, len(ms))
	for i := range ms {
		txs = append(txs, r.toEntity(&ms[i]))
	}
	return txs, nil
}

// Count counts stored transactions for a wallet
func (r *transactionRepo) Count(ctx context.Context, walletAddress string, chain entities.ChainID) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{})
	if walletAddress != "" {
		query = query.Where("wallet_address = ?", normalizeAddress(walletAddress))
	}
	if chain != "" {
		query = query.Where("chain = ?", string(chain))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *transactionRepo) toModel(t *entities.Transaction) *models.Transaction {
	return &models.Transaction{
		ID:                    t.ID,
		Hash:                  t.Hash,
		WalletAddress:         normalizeAddress(t.WalletAddress),
		Chain:                 string(t.Chain),
		FromAddress:           t.FromAddress.Ptr(),
		ToAddress:             t.ToAddress.Ptr(),
		Amount:                t.Amount,
		Status:                t.Status,
		Timestamp:             t.Timestamp.Ptr(),
		BlockNumber:           t.BlockNumber.Ptr(),
		BlockHash:             t.BlockHash.Ptr(),
		GasUsed:               t.GasUsed.Ptr(),
		GasPrice:              t.GasPrice.Ptr(),
		InputData:             t.InputData.Ptr(),
		IsContractInteraction: t.IsContractInteraction,
		ContractAddress:       t.ContractAddress.Ptr(),
		AnomalyScore:          t.AnomalyScore,
		RiskLevel:             string(t.RiskLevel),
		CreatedAt:             t.CreatedAt,
	}
}

func (r *transactionRepo) toEntity(m *models.Transaction) *entities.Transaction {
	return &entities.Transaction{
		ID:                    m.ID,
		Hash:                  m.Hash,
		WalletAddress:         m.WalletAddress,
		Chain:                 entities.ChainID(m.Chain),
		FromAddress:           null.StringFromPtr(m.FromAddress),
		ToAddress:             null.StringFromPtr(m.ToAddress),
		Amount:                m.Amount,
		Status:                m.Status,
		Timestamp:             null.Int64FromPtr(m.Timestamp),
		BlockNumber:           null.Int64FromPtr(m.BlockNumber),
		BlockHash:             null.StringFromPtr(m.BlockHash),
		GasUsed:               null.Int64FromPtr(m.GasUsed),
		GasPrice:              null.Int64FromPtr(m.GasPrice),
		InputData:             null.StringFromPtr(m.InputData),
		IsContractInteraction: m.IsContractInteraction,
		ContractAddress:       null.StringFromPtr(m.ContractAddress),
		AnomalyScore:          m.AnomalyScore,
		RiskLevel:             entities.RiskLevel(m.RiskLevel),
		CreatedAt:             m.CreatedAt,
	}
}
