package models

import (
	"time"

	"github.com/google/uuid"
)

type Wallet struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Address     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_wallets_address_chain"`
	Chain       string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_wallets_address_chain"`
	Name        string    `gorm:"type:varchar(255)"`
	Description string    `gorm:"type:text"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
