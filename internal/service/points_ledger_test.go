package service

import (
	"context"
	"testing"

	"youthhub_backend/internal/testutil"
	"youthhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsLedger_RejectsNonPositiveAmount(t *testing.T) {
	e := newTestEngine(t)
	learner := testutil.SeedLearner(t, e.db, "ana")

	for _, amount := range []int{0, -5} {
		_, err := e.ledger.Credit(context.Background(), e.db, learner.ID, amount)
		assert.ErrorIs(t, err, util.ErrInvalidAmount, "amount=%d", amount)
	}

	assert.Equal(t, 0, testutil.ReloadLearner(t, e.db, learner.ID).Points)
}

func TestPointsLedger_UnknownLearner(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.ledger.Credit(context.Background(), e.db, 999, 10)
	assert.ErrorIs(t, err, util.ErrLearnerNotFound)
}

func TestPointsLedger_CreditWritesPointsAndBadgesTogether(t *testing.T) {
	e := newTestEngine(t)
	badges := testutil.SeedBadges(t, e.db, 0, 100, 500)
	learner := testutil.SeedLearnerWithPoints(t, e.db, "ben", 60)

	result, err := e.ledger.Credit(context.Background(), e.db, learner.ID, 90)
	require.NoError(t, err)

	assert.Equal(t, 60, result.PreviousPoints)
	assert.Equal(t, 150, result.NewPoints)
	require.Len(t, result.NewlyEarned, 1)
	assert.Equal(t, badges[1].ID, result.NewlyEarned[0].ID)

	stored := testutil.ReloadLearner(t, e.db, learner.ID)
	assert.Equal(t, 150, stored.Points)
	assert.Equal(t, []uint{badges[0].ID, badges[1].ID}, []uint(stored.BadgeIDs))
	assert.Equal(t, learner.Version+1, stored.Version)
}

func TestPointsLedger_StaleVersionIsConflict(t *testing.T) {
	e := newTestEngine(t)
	learner := testutil.SeedLearner(t, e.db, "cai")

	err := e.ledger.UserRepo.CreditPoints(context.Background(), e.db, learner.ID, learner.Version+1, 10, nil)
	assert.ErrorIs(t, err, util.ErrStorageConflict)
	assert.Equal(t, 0, testutil.ReloadLearner(t, e.db, learner.ID).Points)
}
