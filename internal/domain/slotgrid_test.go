package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Clinic-SchedulingService/pkg/types"
)

func testBooking(t *testing.T, id int64, start, end string, status BookingStatus) *Booking {
	t.Helper()

	s, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	e, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)

	return &Booking{
		ID:           id,
		ResourceKind: KindDoctor,
		ResourceID:   42,
		StartAt:      s,
		EndAt:        e,
		Status:       status,
	}
}

func TestBuildSlotGrid(t *testing.T) {
	resource := Resource{Kind: KindDoctor, ID: 42}
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("default day yields 12 hourly slots", func(t *testing.T) {
		grid, err := BuildSlotGrid(resource, day, time.UTC,
			DefaultDayStart, DefaultDayEnd, DefaultSlotDurationMinutes, nil)
		require.NoError(t, err)

		require.Len(t, grid.Slots, 12)
		assert.Equal(t, time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC), grid.Slots[0].Start)
		assert.Equal(t, time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC), grid.Slots[11].End)
		for _, slot := range grid.Slots {
			assert.True(t, slot.Available)
		}
	})

	t.Run("partial overlap blocks whole slot", func(t *testing.T) {
		// Бронирование 9:30-10:30 задевает слоты 9:00 и 10:00
		bookings := []*Booking{
			testBooking(t, 1, "2026-03-10T09:30:00Z", "2026-03-10T10:30:00Z", StatusScheduled),
		}

		grid, err := BuildSlotGrid(resource, day, time.UTC,
			DefaultDayStart, DefaultDayEnd, DefaultSlotDurationMinutes, bookings)
		require.NoError(t, err)

		assert.True(t, grid.Slots[0].Available)  // 07:00
		assert.True(t, grid.Slots[1].Available)  // 08:00
		assert.False(t, grid.Slots[2].Available) // 09:00
		assert.False(t, grid.Slots[3].Available) // 10:00
		assert.True(t, grid.Slots[4].Available)  // 11:00
	})

	t.Run("back-to-back booking does not block neighbour slot", func(t *testing.T) {
		bookings := []*Booking{
			testBooking(t, 1, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z", StatusScheduled),
		}

		grid, err := BuildSlotGrid(resource, day, time.UTC,
			DefaultDayStart, DefaultDayEnd, DefaultSlotDurationMinutes, bookings)
		require.NoError(t, err)

		assert.True(t, grid.Slots[1].Available)  // 08:00
		assert.False(t, grid.Slots[2].Available) // 09:00
		assert.True(t, grid.Slots[3].Available)  // 10:00
	})

	t.Run("cancelled and no_show free the slot", func(t *testing.T) {
		bookings := []*Booking{
			testBooking(t, 1, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z", StatusCancelled),
			testBooking(t, 2, "2026-03-10T11:00:00Z", "2026-03-10T12:00:00Z", StatusNoShow),
		}

		grid, err := BuildSlotGrid(resource, day, time.UTC,
			DefaultDayStart, DefaultDayEnd, DefaultSlotDurationMinutes, bookings)
		require.NoError(t, err)

		for _, slot := range grid.Slots {
			assert.True(t, slot.Available)
		}
	})

	t.Run("completed still occupies the slot", func(t *testing.T) {
		bookings := []*Booking{
			testBooking(t, 1, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z", StatusCompleted),
		}

		grid, err := BuildSlotGrid(resource, day, time.UTC,
			DefaultDayStart, DefaultDayEnd, DefaultSlotDurationMinutes, bookings)
		require.NoError(t, err)

		assert.False(t, grid.Slots[2].Available)
	})

	t.Run("clinic timezone shifts absolute slot bounds", func(t *testing.T) {
		msk := time.FixedZone("MSK", 3*60*60)
		dayMsk := time.Date(2026, 3, 10, 0, 0, 0, 0, msk)

		grid, err := BuildSlotGrid(resource, dayMsk, msk,
			DefaultDayStart, DefaultDayEnd, DefaultSlotDurationMinutes, nil)
		require.NoError(t, err)

		// 07:00 MSK == 04:00 UTC
		require.Len(t, grid.Slots, 12)
		assert.Equal(t, time.Date(2026, 3, 10, 4, 0, 0, 0, time.UTC), grid.Slots[0].Start)
	})

	t.Run("uneven tail slot is dropped", func(t *testing.T) {
		// 07:00-19:00 при слоте 100 минут: влезает 7 целых слотов,
		// неполный хвост 18:40-19:00 в сетку не попадает
		grid, err := BuildSlotGrid(resource, day, time.UTC,
			DefaultDayStart, DefaultDayEnd, 100, nil)
		require.NoError(t, err)

		require.Len(t, grid.Slots, 7)
		assert.Equal(t, time.Date(2026, 3, 10, 18, 40, 0, 0, time.UTC), grid.Slots[6].End)
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := BuildSlotGrid(resource, day, time.UTC,
			types.TimeString("19:00"), types.TimeString("07:00"), DefaultSlotDurationMinutes, nil)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("invalid slot duration", func(t *testing.T) {
		_, err := BuildSlotGrid(resource, day, time.UTC,
			DefaultDayStart, DefaultDayEnd, 0, nil)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}
