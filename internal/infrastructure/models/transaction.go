package models

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Hash                  string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	WalletAddress         string    `gorm:"type:varchar(255);not null;index"`
	Chain                 string    `gorm:"type:varchar(32);not null;index"`
	FromAddress           *string   `gorm:"type:varchar(255)"`
	ToAddress             *string   `gorm:"type:varchar(255)"`
	Amount                float64   `gorm:"not null;default:0"`
	Status                string    `gorm:"type:varchar(32)"`
	Timestamp             *int64    `gorm:"index"`
	BlockNumber           *int64
	BlockHash             *string `gorm:"type:varchar(255)"`
	GasUsed               *int64
	GasPrice              *int64
	InputData             *string `gorm:"type:text"`
	IsContractInteraction bool    `gorm:"not null;default:false"`
	ContractAddress       *string `gorm:"type:varchar(255)"`
	AnomalyScore          float64 `gorm:"not null;default:0"`
	RiskLevel             string  `gorm:"type:varchar(16);not null;default:'low'"`
	CreatedAt             time.Time
}
