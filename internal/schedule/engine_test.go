package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superior-auto/frontdesk/internal/database"
)

var (
	businessOpen  = Clock{Hour: 9}
	businessClose = Clock{Hour: 17}
)

func newEngine(t *testing.T) (*Engine, *database.DB) {
	t.Helper()
	db := database.NewTestDB(t)
	return NewEngine(db), db
}

func book(t *testing.T, db *database.DB, start time.Time, minutes int) {
	t.Helper()
	require.NoError(t, db.Append(&database.Appointment{
		Title:     "Booked",
		StartTime: start,
		EndTime:   start.Add(time.Duration(minutes) * time.Minute),
	}))
}

func TestOverlapsSymmetry(t *testing.T) {
	base := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{name: "identical", aStart: base, aEnd: base.Add(30 * time.Minute), bStart: base, bEnd: base.Add(30 * time.Minute), want: true},
		{name: "partial", aStart: base, aEnd: base.Add(30 * time.Minute), bStart: base.Add(15 * time.Minute), bEnd: base.Add(45 * time.Minute), want: true},
		{name: "nested", aStart: base, aEnd: base.Add(time.Hour), bStart: base.Add(15 * time.Minute), bEnd: base.Add(30 * time.Minute), want: true},
		{name: "touching", aStart: base, aEnd: base.Add(30 * time.Minute), bStart: base.Add(30 * time.Minute), bEnd: base.Add(time.Hour), want: false},
		{name: "disjoint", aStart: base, aEnd: base.Add(30 * time.Minute), bStart: base.Add(2 * time.Hour), bEnd: base.Add(3 * time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd), "overlap must be symmetric")
		})
	}
}

func TestHasConflictHalfOpenBoundary(t *testing.T) {
	engine, db := newEngine(t)

	// Existing event 09:00-09:30.
	start := time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC)
	book(t, db, start, 30)

	// Candidate starting exactly at 09:30 does not conflict.
	conflicts, err := engine.HasConflict(start.Add(30*time.Minute), 30)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	// The identical interval does conflict.
	conflicts, err = engine.HasConflict(start, 30)
	require.NoError(t, err)
	assert.Len(t, conflicts, 1)
}

func TestSuggestNextSlotSkipsBookedSlots(t *testing.T) {
	engine, db := newEngine(t)

	desired := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	book(t, db, desired, 30)
	book(t, db, desired.Add(30*time.Minute), 30)

	got, ok, err := engine.SuggestNextSlot(desired, 30, businessOpen, businessClose, 30, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, desired.Add(time.Hour), got)
}

func TestSuggestNextSlotRoundsDownToInterval(t *testing.T) {
	engine, _ := newEngine(t)

	desired := time.Date(2025, 8, 20, 10, 17, 0, 0, time.UTC)
	got, ok, err := engine.SuggestNextSlot(desired, 30, businessOpen, businessClose, 30, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC), got)
}

func TestSuggestNextSlotMonotonicity(t *testing.T) {
	engine, db := newEngine(t)

	// Free slot earlier in the day must never be suggested for a later request.
	desired := time.Date(2025, 8, 20, 14, 0, 0, 0, time.UTC)
	book(t, db, desired, 30)

	got, ok, err := engine.SuggestNextSlot(desired, 30, businessOpen, businessClose, 30, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, got.Before(desired), "suggestion before the rounded desired start")
	assert.Equal(t, desired.Add(30*time.Minute), got)
}

func TestSuggestNextSlotRespectsBusinessClose(t *testing.T) {
	engine, db := newEngine(t)

	// 16:30 + 60 minutes would end past 17:00; the suggestion must move to
	// the next day's opening slot.
	desired := time.Date(2025, 8, 20, 16, 30, 0, 0, time.UTC)
	book(t, db, desired, 30)

	got, ok, err := engine.SuggestNextSlot(desired, 60, businessOpen, businessClose, 30, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 8, 21, 9, 0, 0, 0, time.UTC), got)
}

func TestSuggestNextSlotStartsAtOpeningOnLaterDays(t *testing.T) {
	engine, db := newEngine(t)

	// Book out the whole requested day from the desired slot onward.
	desired := time.Date(2025, 8, 20, 13, 0, 0, 0, time.UTC)
	for slot := desired; slot.Hour() < 17; slot = slot.Add(30 * time.Minute) {
		book(t, db, slot, 30)
	}

	got, ok, err := engine.SuggestNextSlot(desired, 30, businessOpen, businessClose, 30, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 8, 21, 9, 0, 0, 0, time.UTC), got)
}

func TestSuggestNextSlotExhaustedWindow(t *testing.T) {
	engine, db := newEngine(t)

	desired := time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC)
	for day := 0; day <= 2; day++ {
		dayStart := desired.AddDate(0, 0, day)
		for slot := dayStart; slot.Hour() < 17; slot = slot.Add(30 * time.Minute) {
			book(t, db, slot, 30)
		}
	}

	_, ok, err := engine.SuggestNextSlot(desired, 30, businessOpen, businessClose, 30, 2)
	require.NoError(t, err)
	assert.False(t, ok, "fully booked window must yield no suggestion")
}

func TestSuggestNextSlotInvalidArguments(t *testing.T) {
	engine, _ := newEngine(t)
	desired := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

	_, _, err := engine.SuggestNextSlot(desired, 30, businessOpen, businessClose, 0, 7)
	assert.Error(t, err)

	_, _, err = engine.SuggestNextSlot(desired, 0, businessOpen, businessClose, 30, 7)
	assert.Error(t, err)
}
