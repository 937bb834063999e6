package models

import (
	"time"

	"github.com/google/uuid"
)

type AlertRule struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:varchar(255);not null"`
	RuleType   string    `gorm:"type:varchar(32);not null;index"`
	Threshold  *float64
	Expression *string `gorm:"type:text"`
	Enabled    bool    `gorm:"not null;default:true;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
