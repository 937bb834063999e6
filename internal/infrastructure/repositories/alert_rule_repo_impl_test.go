package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"wallet-sentinel.backend/internal/domain/entities"
	domainerrors "wallet-sentinel.backend/internal/domain/errors"
)

func TestAlertRuleRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlertRuleRepository(db)
	ctx := context.Background()

	rule := &entities.AlertRule{
		Name:      "large transfers",
		RuleType:  entities.RuleTypeTransaction,
		Threshold: null.Float64From(100),
		Enabled:   true,
	}
	require.NoError(t, repo.Create(ctx, rule))
	require.NotEqual(t, uuid.Nil, rule.ID)

	got, err := repo.GetByID(ctx, rule.ID)
	require.NoError(t, err)
	require.Equal(t, "large transfers", got.Name)
	require.Equal(t, 100.0, got.Threshold.Float64)
	require.False(t, got.Expression.Valid)

	got.Name = "very large transfers"
	got.Threshold = null.Float64From(500)
	got.Enabled = false
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByID(ctx, rule.ID)
	require.NoError(t, err)
	require.Equal(t, "very large transfers", updated.Name)
	require.Equal(t, 500.0, updated.Threshold.Float64)
	require.False(t, updated.Enabled)

	require.NoError(t, repo.Delete(ctx, rule.ID))
	_, err = repo.GetByID(ctx, rule.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAlertRuleRepository_ListEnabledOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlertRuleRepository(db)
	ctx := context.Background()

	enabled := &entities.AlertRule{
		Name:       "count rule",
		RuleType:   entities.RuleTypeTransaction,
		Expression: null.StringFrom("count > 5 in 600"),
		Enabled:    true,
	}
	require.NoError(t, repo.Create(ctx, enabled))

	disabled := &entities.AlertRule{
		Name:      "off rule",
		RuleType:  entities.RuleTypeBalance,
		Threshold: null.Float64From(1),
		Enabled:   false,
	}
	require.NoError(t, repo.Create(ctx, disabled))

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, enabled.ID, active[0].ID)
	require.Equal(t, "count > 5 in 600", active[0].Expression.String)
}

func TestAlertRuleRepository_UpdateDeleteMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlertRuleRepository(db)
	ctx := context.Background()

	err := repo.Update(ctx, &entities.AlertRule{ID: uuid.New(), Name: "ghost"})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Delete(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
