package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"scheduled to confirmed", StatusScheduled, StatusConfirmed, true},
		{"confirmed to checked_in", StatusConfirmed, StatusCheckedIn, true},
		{"checked_in to in_progress", StatusCheckedIn, StatusInProgress, true},
		{"in_progress to completed", StatusInProgress, StatusCompleted, true},

		{"scheduled skips to checked_in", StatusScheduled, StatusCheckedIn, false},
		{"confirmed back to scheduled", StatusConfirmed, StatusScheduled, false},
		{"scheduled to completed", StatusScheduled, StatusCompleted, false},

		{"scheduled to cancelled", StatusScheduled, StatusCancelled, true},
		{"in_progress to cancelled", StatusInProgress, StatusCancelled, true},
		{"confirmed to no_show", StatusConfirmed, StatusNoShow, true},

		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusScheduled, false},
		{"no_show is terminal", StatusNoShow, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusIsActive(t *testing.T) {
	// Слот освобождают ровно два статуса: cancelled и no_show.
	// completed остаётся активным — приём состоялся и занимал таймлайн.
	for _, s := range ActiveStatuses {
		assert.True(t, s.IsActive(), "status %s", s)
	}
	for _, s := range InactiveStatuses {
		assert.False(t, s.IsActive(), "status %s", s)
	}
	assert.True(t, StatusCompleted.IsActive())
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("checked_in")
	assert.NoError(t, err)
	assert.Equal(t, StatusCheckedIn, status)

	_, err = ParseStatus("unknown")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
