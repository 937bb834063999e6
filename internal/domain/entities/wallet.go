package entities

import (
	"time"

	"github.com/google/uuid"
)

// Wallet represents a monitored address on a specific chain.
// Identity is (Address, Chain); addresses are stored lowercase.
type Wallet struct {
	ID          uuid.UUID `json:"id"`
	Address     string    `json:"address"`
	Chain       ChainID   `json:"chain"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RegisterWalletInput represents input for registering a wallet to monitor
type RegisterWalletInput struct {
	Address     string `json:"address" binding:"required"`
	Chain       string `json:"chain" binding:"required"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BalanceReading is a point-in-time balance observation. Available is false
// when the adapter could not reach the chain; a zero balance with
// Available=false means "unknown", not "empty".
type BalanceReading struct {
	Address   string    `json:"address"`
	Chain     ChainID   `json:"chain"`
	Balance   float64   `json:"balance"`
	Available bool      `json:"available"`
	Cached    bool      `json:"cached"`
	ReadAt    time.Time `json:"readAt"`
}
