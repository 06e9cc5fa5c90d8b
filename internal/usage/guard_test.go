package usage

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superior-auto/frontdesk/internal/database"
)

type failingLedger struct{}

func (failingLedger) RecordUsage(string, int) error { return assert.AnError }
func (failingLedger) TotalTokens() (int64, error)   { return 0, assert.AnError }

func TestGuardBudget(t *testing.T) {
	db := database.NewTestDB(t)

	// $0.01 per 1k tokens, hard cap $0.02: two thousand tokens fit exactly.
	guard := NewGuard(db, 0.01, 0.02)
	assert.True(t, guard.CanProceed())

	require.NoError(t, guard.Record("call-1", 2000))
	assert.True(t, guard.CanProceed(), "spend at the limit still proceeds")

	require.NoError(t, guard.Record("call-1", 1))
	assert.False(t, guard.CanProceed(), "spend over the limit is denied")

	cost, err := guard.TotalCost()
	require.NoError(t, err)
	assert.Greater(t, cost, 0.02)
}

func TestGuardLoadsExistingLedger(t *testing.T) {
	db := database.NewTestDB(t)
	require.NoError(t, db.RecordUsage("old-call", 5000))

	guard := NewGuard(db, 0.01, 0.02)
	assert.False(t, guard.CanProceed(), "prior spend counts against the budget")
}

func TestGuardIgnoresNonPositiveTokens(t *testing.T) {
	db := database.NewTestDB(t)
	guard := NewGuard(db, 0.01, 0.02)

	require.NoError(t, guard.Record("call-1", 0))
	require.NoError(t, guard.Record("call-1", -5))

	total, err := db.TotalTokens()
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestGuardFailsClosed(t *testing.T) {
	guard := NewGuard(failingLedger{}, 0.01, 0.02)
	assert.False(t, guard.CanProceed())
	assert.Error(t, guard.Record("call-1", 10))
}

func TestGuardConcurrentRecord(t *testing.T) {
	db := database.NewTestDB(t)
	guard := NewGuard(db, DefaultCostPer1KTokens, DefaultLimitDollars)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = guard.Record("call-1", 10)
		}()
	}
	wg.Wait()

	total, err := db.TotalTokens()
	require.NoError(t, err)
	assert.Equal(t, int64(200), total)
}
