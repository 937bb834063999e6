package models

import (
	"time"

	"github.com/google/uuid"
)

type Alert struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	WalletAddress   string    `gorm:"type:varchar(255);not null;index"`
	Chain           string    `gorm:"type:varchar(32);not null;index"`
	AlertType       string    `gorm:"type:varchar(32);not null"`
	Message         string    `gorm:"type:text;not null"`
	RiskLevel       string    `gorm:"type:varchar(16);not null"`
	TransactionHash *string   `gorm:"type:varchar(255);index"`
	Status          string    `gorm:"type:varchar(16);not null;default:'pending';index"`
	CreatedAt       time.Time
	ResolvedAt      *time.Time
}
