package repositories

import (
	"context"

	"github.com/google/uuid"
	"wallet-sentinel.backend/internal/domain/entities"
)

// AlertRepository defines alert data operations.
// Create appends unconditionally; the alerts table carries no uniqueness
// key, so dedup of repeated rule firings is the caller's concern.
type AlertRepository interface {
	Create(ctx context.Context, alert *entities.Alert) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Alert, error)
	List(ctx context.Context, filter entities.AlertFilter) ([]*entities.Alert, error)
	// Resolve marks a pending alert resolved and stamps ResolvedAt.
	// Resolving an already-resolved alert is a no-op success.
	Resolve(ctx context.Context, id uuid.UUID) (*entities.Alert, error)
}
