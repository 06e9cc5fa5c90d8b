package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAppend(t *testing.T, db *DB, title string, start time.Time, minutes int) *Appointment {
	t.Helper()
	a := &Appointment{
		Title:     title,
		StartTime: start,
		EndTime:   start.Add(time.Duration(minutes) * time.Minute),
	}
	require.NoError(t, db.Append(a))
	require.NotZero(t, a.ID)
	return a
}

func TestQueryOverlapping(t *testing.T) {
	db := NewTestDB(t)
	base := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

	mustAppend(t, db, "Oil Change for +1555", base, 30)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{name: "identical interval", start: base, end: base.Add(30 * time.Minute), want: 1},
		{name: "partial overlap", start: base.Add(15 * time.Minute), end: base.Add(45 * time.Minute), want: 1},
		{name: "contains existing", start: base.Add(-time.Hour), end: base.Add(time.Hour), want: 1},
		{name: "touching end boundary", start: base.Add(30 * time.Minute), end: base.Add(60 * time.Minute), want: 0},
		{name: "touching start boundary", start: base.Add(-30 * time.Minute), end: base, want: 0},
		{name: "disjoint", start: base.Add(2 * time.Hour), end: base.Add(3 * time.Hour), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.QueryOverlapping(tt.start, tt.end)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestQueryOverlappingNormalizesZones(t *testing.T) {
	db := NewTestDB(t)
	toronto, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)

	// 10:00 Toronto == 14:00 UTC in August (EDT).
	start := time.Date(2025, 8, 20, 10, 0, 0, 0, toronto)
	mustAppend(t, db, "Brake Inspection", start, 30)

	utcStart := time.Date(2025, 8, 20, 14, 0, 0, 0, time.UTC)
	got, err := db.QueryOverlapping(utcStart, utcStart.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestReserveRejectsRace(t *testing.T) {
	db := NewTestDB(t)
	start := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

	first := &Appointment{Title: "Oil Change", StartTime: start, EndTime: start.Add(30 * time.Minute)}
	conflicts, err := db.Reserve(first)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	// A second reservation for the identical interval must be rejected.
	second := &Appointment{Title: "Tire Rotation", StartTime: start, EndTime: start.Add(30 * time.Minute)}
	conflicts, err = db.Reserve(second)
	require.ErrorIs(t, err, ErrSlotTaken)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "Oil Change", conflicts[0].Title)

	// A touching slot is free under half-open semantics.
	third := &Appointment{Title: "Tire Rotation", StartTime: start.Add(30 * time.Minute), EndTime: start.Add(60 * time.Minute)}
	conflicts, err = db.Reserve(third)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestIsTransient(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.False(t, IsTransient(ErrSlotTaken))
	assert.False(t, IsTransient(assert.AnError))
}
