package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		a1, a2, b1, b2 time.Time
		want           bool
	}{
		{"identical ranges", date(2026, 3, 1), date(2026, 3, 5), date(2026, 3, 1), date(2026, 3, 5), true},
		{"partial overlap", date(2026, 3, 1), date(2026, 3, 5), date(2026, 3, 4), date(2026, 3, 8), true},
		{"contained range", date(2026, 3, 1), date(2026, 3, 10), date(2026, 3, 4), date(2026, 3, 6), true},
		{"back to back, a first", date(2026, 3, 1), date(2026, 3, 5), date(2026, 3, 5), date(2026, 3, 8), false},
		{"back to back, b first", date(2026, 3, 5), date(2026, 3, 8), date(2026, 3, 1), date(2026, 3, 5), false},
		{"disjoint", date(2026, 3, 1), date(2026, 3, 3), date(2026, 3, 10), date(2026, 3, 12), false},
		{"one night shared", date(2026, 3, 1), date(2026, 3, 5), date(2026, 3, 4), date(2026, 3, 5), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.a1, tc.a2, tc.b1, tc.b2))
			// The predicate is symmetric in the two ranges.
			assert.Equal(t, tc.want, Overlaps(tc.b1, tc.b2, tc.a1, tc.a2))
		})
	}
}

func TestNights(t *testing.T) {
	assert.Equal(t, 1, Nights(date(2026, 3, 1), date(2026, 3, 2)))
	assert.Equal(t, 4, Nights(date(2026, 3, 1), date(2026, 3, 5)))
	assert.Equal(t, 31, Nights(date(2026, 1, 1), date(2026, 2, 1)))
}

func TestStatusCanTransition(t *testing.T) {
	// Forward chain.
	assert.True(t, StatusBooked.CanTransition(StatusConfirmed))
	assert.True(t, StatusConfirmed.CanTransition(StatusCheckedIn))
	assert.True(t, StatusCheckedIn.CanTransition(StatusCheckedOut))

	// No skipping ahead or moving backwards.
	assert.False(t, StatusBooked.CanTransition(StatusCheckedIn))
	assert.False(t, StatusBooked.CanTransition(StatusCheckedOut))
	assert.False(t, StatusConfirmed.CanTransition(StatusBooked))
	assert.False(t, StatusCheckedIn.CanTransition(StatusConfirmed))

	// Cancellation is reachable from every non-terminal state.
	assert.True(t, StatusBooked.CanTransition(StatusCancelled))
	assert.True(t, StatusConfirmed.CanTransition(StatusCancelled))
	assert.True(t, StatusCheckedIn.CanTransition(StatusCancelled))

	// Terminal states admit nothing.
	for _, next := range ValidStatuses {
		assert.False(t, StatusCancelled.CanTransition(next), "cancelled -> %s", next)
		assert.False(t, StatusCheckedOut.CanTransition(next), "checked_out -> %s", next)
	}
}
