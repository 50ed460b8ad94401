package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"guaravita-backend/database"
	"guaravita-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (*Ledger, *database.MemStore) {
	t.Helper()
	store := database.NewMemStore()
	return NewLedger(store), store
}

func mustCreateDebtor(t *testing.T, l *Ledger, name string) *models.Debtor {
	t.Helper()
	d, err := l.CreateDebtor(context.Background(), name)
	require.NoError(t, err)
	return d
}

func getDebtor(t *testing.T, store *database.MemStore, id uuid.UUID) *models.Debtor {
	t.Helper()
	d, err := store.GetDebtor(context.Background(), id)
	require.NoError(t, err)
	return d
}

func TestCreateDebtor(t *testing.T) {
	l, store := newTestLedger(t)

	d := mustCreateDebtor(t, l, "  Ana  ")
	assert.Equal(t, "Ana", d.Name, "name should be trimmed")
	assert.Equal(t, 0, d.Amount)
	assert.False(t, d.Hidden)
	assert.NotEqual(t, uuid.Nil, d.ID)
	assert.False(t, d.LastUpdated.IsZero())

	stored := getDebtor(t, store, d.ID)
	assert.Equal(t, "Ana", stored.Name)
}

func TestCreateDebtorEmptyName(t *testing.T) {
	l, _ := newTestLedger(t)

	_, err := l.CreateDebtor(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = l.CreateDebtor(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestAdjustAmountNeverGoesNegative(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()
	d := mustCreateDebtor(t, l, "Ana")

	// Arbitrary deltas, including ones that would drive the amount
	// far below zero: the clamp must hold after every step.
	deltas := []int{1, 1, -5, 3, -1, -100, 7, -2, -2, -2, -2}
	for _, delta := range deltas {
		require.NoError(t, l.AdjustAmount(ctx, d.ID, delta))
		assert.GreaterOrEqual(t, getDebtor(t, store, d.ID).Amount, 0)
	}
}

func TestAdjustAmountClampsAtZero(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()
	d := mustCreateDebtor(t, l, "Ana")

	require.NoError(t, l.AdjustAmount(ctx, d.ID, -5))
	assert.Equal(t, 0, getDebtor(t, store, d.ID).Amount)

	require.NoError(t, l.AdjustAmount(ctx, d.ID, 3))
	require.NoError(t, l.AdjustAmount(ctx, d.ID, -5))
	assert.Equal(t, 0, getDebtor(t, store, d.ID).Amount)
}

func TestAdjustAmountBumpsLastUpdated(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()
	d := mustCreateDebtor(t, l, "Ana")
	before := getDebtor(t, store, d.ID).LastUpdated

	require.NoError(t, l.AdjustAmount(ctx, d.ID, 1))
	after := getDebtor(t, store, d.ID).LastUpdated
	assert.False(t, after.Before(before))

	// Visibility toggles must not touch last_updated.
	require.NoError(t, l.ToggleVisibility(ctx, d.ID))
	assert.Equal(t, after, getDebtor(t, store, d.ID).LastUpdated)
}

func TestAdjustAmountMissingDebtor(t *testing.T) {
	l, _ := newTestLedger(t)
	err := l.AdjustAmount(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, ErrDebtorNotFound)
}

func TestToggleVisibility(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()
	d := mustCreateDebtor(t, l, "Ana")

	require.NoError(t, l.ToggleVisibility(ctx, d.ID))
	assert.True(t, getDebtor(t, store, d.ID).Hidden)

	require.NoError(t, l.ToggleVisibility(ctx, d.ID))
	assert.False(t, getDebtor(t, store, d.ID).Hidden)

	assert.ErrorIs(t, l.ToggleVisibility(ctx, uuid.New()), ErrDebtorNotFound)
}

func TestCreateRequestSnapshotsName(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()
	d := mustCreateDebtor(t, l, "Ana")

	r, err := l.CreateRequest(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, r.DebtorID)
	assert.Equal(t, "Ana", r.DebtorName)
	assert.Equal(t, models.RequestPending, r.Status)
	assert.False(t, r.Timestamp.IsZero())

	// Multiple pending requests for the same debtor are allowed.
	_, err = l.CreateRequest(ctx, d.ID)
	require.NoError(t, err)

	snap, err := l.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Requests, 2)
}

func TestCreateRequestMissingDebtor(t *testing.T) {
	l, _ := newTestLedger(t)
	_, err := l.CreateRequest(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrDebtorNotFound)
}

func TestProcessRequestApproveDecrementsOnce(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()
	d := mustCreateDebtor(t, l, "Ana")
	require.NoError(t, l.AdjustAmount(ctx, d.ID, 3))

	r, err := l.CreateRequest(ctx, d.ID)
	require.NoError(t, err)

	require.NoError(t, l.ProcessRequest(ctx, r.ID, true))
	assert.Equal(t, 2, getDebtor(t, store, d.ID).Amount)

	stored, err := store.GetRequest(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, stored.Status)

	// Replaying the approval must not decrement again.
	err = l.ProcessRequest(ctx, r.ID, true)
	assert.ErrorIs(t, err, ErrRequestAlreadyProcessed)
	assert.Equal(t, 2, getDebtor(t, store, d.ID).Amount)
}

func TestProcessRequestReject(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()
	d := mustCreateDebtor(t, l, "Ana")
	require.NoError(t, l.AdjustAmount(ctx, d.ID, 2))

	r, err := l.CreateRequest(ctx, d.ID)
	require.NoError(t, err)

	require.NoError(t, l.ProcessRequest(ctx, r.ID, false))
	assert.Equal(t, 2, getDebtor(t, store, d.ID).Amount, "rejection must not change the amount")

	stored, err := store.GetRequest(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, stored.Status)

	// Terminal is terminal: a rejected request cannot be approved later.
	err = l.ProcessRequest(ctx, r.ID, true)
	assert.ErrorIs(t, err, ErrRequestAlreadyProcessed)
	assert.Equal(t, 2, getDebtor(t, store, d.ID).Amount)
}

func TestProcessRequestApproveAtZeroClamps(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()
	d := mustCreateDebtor(t, l, "Ana")

	r, err := l.CreateRequest(ctx, d.ID)
	require.NoError(t, err)

	require.NoError(t, l.ProcessRequest(ctx, r.ID, true))
	assert.Equal(t, 0, getDebtor(t, store, d.ID).Amount)
}

func TestProcessRequestMissing(t *testing.T) {
	l, _ := newTestLedger(t)
	err := l.ProcessRequest(context.Background(), uuid.New(), true)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestProcessRequestRollsBackOnDecrementFailure(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()
	d := mustCreateDebtor(t, l, "Ana")
	require.NoError(t, l.AdjustAmount(ctx, d.ID, 3))

	r, err := l.CreateRequest(ctx, d.ID)
	require.NoError(t, err)

	store.FailAddToAmount = errors.New("backend write failed")
	err = l.ProcessRequest(ctx, r.ID, true)
	require.Error(t, err)

	// The status transition must roll back with the failed decrement,
	// so a retry applies the side effect exactly once.
	stored, err := store.GetRequest(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, stored.Status)
	assert.Equal(t, 3, getDebtor(t, store, d.ID).Amount)

	store.FailAddToAmount = nil
	require.NoError(t, l.ProcessRequest(ctx, r.ID, true))
	assert.Equal(t, 2, getDebtor(t, store, d.ID).Amount)
}

func TestRemoveDebtorCascades(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()
	d := mustCreateDebtor(t, l, "Ana")
	other := mustCreateDebtor(t, l, "Bruno")

	_, err := l.CreateRequest(ctx, d.ID)
	require.NoError(t, err)
	_, err = l.CreateRequest(ctx, d.ID)
	require.NoError(t, err)
	keep, err := l.CreateRequest(ctx, other.ID)
	require.NoError(t, err)

	require.NoError(t, l.RemoveDebtor(ctx, d.ID))

	_, err = store.GetDebtor(ctx, d.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	requests, err := store.ListRequests(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 1, "only the other debtor's request survives")
	assert.Equal(t, keep.ID, requests[0].ID)
}

func TestRemoveDebtorFailsSafeWhenCleanupFails(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()
	d := mustCreateDebtor(t, l, "Ana")
	_, err := l.CreateRequest(ctx, d.ID)
	require.NoError(t, err)

	// Request cleanup fails: the debtor must survive so no request is
	// ever left orphaned.
	store.FailDeleteRequests = errors.New("backend delete failed")
	require.Error(t, l.RemoveDebtor(ctx, d.ID))

	_, err = store.GetDebtor(ctx, d.ID)
	assert.NoError(t, err)
	requests, err := store.ListRequests(ctx)
	require.NoError(t, err)
	assert.Len(t, requests, 1)
}

func TestRemoveDebtorMissing(t *testing.T) {
	l, _ := newTestLedger(t)
	err := l.RemoveDebtor(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrDebtorNotFound)
}

func TestSnapshotOrdering(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	carla := mustCreateDebtor(t, l, "Carla")
	ana := mustCreateDebtor(t, l, "Ana")
	bruno := mustCreateDebtor(t, l, "Bruno")

	r1, err := l.CreateRequest(ctx, carla.ID)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond) // distinct timestamps
	r2, err := l.CreateRequest(ctx, ana.ID)
	require.NoError(t, err)

	snap, err := l.Snapshot(ctx)
	require.NoError(t, err)

	require.Len(t, snap.Debtors, 3)
	assert.Equal(t, []string{"Ana", "Bruno", "Carla"}, []string{
		snap.Debtors[0].Name, snap.Debtors[1].Name, snap.Debtors[2].Name,
	})
	_ = bruno

	// Newest request first.
	require.Len(t, snap.Requests, 2)
	assert.Equal(t, r2.ID, snap.Requests[0].ID)
	assert.Equal(t, r1.ID, snap.Requests[1].ID)
}

// Full scenario: create → three increments → request → approve →
// replayed approval is a guarded no-op.
func TestLedgerScenario(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()

	ana := mustCreateDebtor(t, l, "Ana")
	assert.Equal(t, 0, ana.Amount)

	for i := 0; i < 3; i++ {
		require.NoError(t, l.AdjustAmount(ctx, ana.ID, 1))
	}
	assert.Equal(t, 3, getDebtor(t, store, ana.ID).Amount)

	r, err := l.CreateRequest(ctx, ana.ID)
	require.NoError(t, err)

	require.NoError(t, l.ProcessRequest(ctx, r.ID, true))
	assert.Equal(t, 2, getDebtor(t, store, ana.ID).Amount)

	err = l.ProcessRequest(ctx, r.ID, true)
	assert.ErrorIs(t, err, ErrRequestAlreadyProcessed)
	assert.Equal(t, 2, getDebtor(t, store, ana.ID).Amount)
}
