package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires a reachable database; set DEBT_PLANNER_TEST_DATABASE_URL to run.
func TestDebtRepositoryPostgres_RoundTrip(t *testing.T) {
	dsn := os.Getenv("DEBT_PLANNER_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("DEBT_PLANNER_TEST_DATABASE_URL not set")
	}

	db, err := OpenPostgres(dsn, 2)
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo := NewDebtRepositoryPostgres(db)
	require.NoError(t, repo.Migrate(ctx))

	userID := "test-" + uuid.NewString()

	empty, err := repo.List(ctx, userID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	debt := sampleDebt(uuid.NewString(), time.Now().UTC().Truncate(time.Second))
	require.NoError(t, repo.Create(ctx, userID, debt))
	assert.ErrorIs(t, repo.Create(ctx, userID, debt), ErrDuplicate)

	got, err := repo.Get(ctx, userID, debt.ID)
	require.NoError(t, err)
	assert.True(t, debt.CurrentBalance.Equal(got.CurrentBalance))
	assert.True(t, debt.InterestRateAnnual.Equal(got.InterestRateAnnual))

	require.NoError(t, repo.SetArchived(ctx, userID, debt.ID, true))
	list, err := repo.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsArchived)

	_, err = repo.Get(ctx, userID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.ExecContext(ctx, `DELETE FROM debts WHERE user_id = $1`, userID)
	require.NoError(t, err)
}
