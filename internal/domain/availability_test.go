package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/Clinic-SchedulingService/pkg/ptr"
)

func TestOverlappingBookings(t *testing.T) {
	bookings := []*Booking{
		testBooking(t, 1, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z", StatusScheduled),
		testBooking(t, 2, "2026-03-10T10:00:00Z", "2026-03-10T11:00:00Z", StatusConfirmed),
		testBooking(t, 3, "2026-03-10T11:00:00Z", "2026-03-10T12:00:00Z", StatusCancelled),
	}

	t.Run("finds conflicts", func(t *testing.T) {
		candidate := mustInterval(t, "2026-03-10T09:30:00Z", "2026-03-10T10:30:00Z")

		conflicts := OverlappingBookings(bookings, candidate, nil)
		assert.Len(t, conflicts, 2)
	})

	t.Run("back-to-back is free", func(t *testing.T) {
		candidate := mustInterval(t, "2026-03-10T08:00:00Z", "2026-03-10T09:00:00Z")

		assert.Empty(t, OverlappingBookings(bookings, candidate, nil))
		assert.True(t, IsIntervalFree(bookings, candidate, nil))
	})

	t.Run("cancelled booking is ignored", func(t *testing.T) {
		candidate := mustInterval(t, "2026-03-10T11:00:00Z", "2026-03-10T12:00:00Z")

		assert.True(t, IsIntervalFree(bookings, candidate, nil))
	})

	t.Run("exclude booking id skips self", func(t *testing.T) {
		candidate := mustInterval(t, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z")

		assert.False(t, IsIntervalFree(bookings, candidate, nil))
		assert.True(t, IsIntervalFree(bookings, candidate, ptr.Ptr(int64(1))))
	})

	t.Run("exclude does not hide other conflicts", func(t *testing.T) {
		candidate := mustInterval(t, "2026-03-10T09:30:00Z", "2026-03-10T10:30:00Z")

		conflicts := OverlappingBookings(bookings, candidate, ptr.Ptr(int64(1)))
		assert.Len(t, conflicts, 1)
		assert.Equal(t, int64(2), conflicts[0].ID)
	})
}

func TestBookingRequiresPayment(t *testing.T) {
	doctorAppointment := &Booking{Source: SourceAppointment, ResourceKind: KindDoctor}
	roomOfAppointment := &Booking{Source: SourceAppointment, ResourceKind: KindRoom}
	rental := &Booking{Source: SourceRental, ResourceKind: KindRoom}

	assert.True(t, doctorAppointment.RequiresPayment())
	assert.False(t, roomOfAppointment.RequiresPayment(), "кабинетная строка приёма не оплачивается отдельно")
	assert.False(t, rental.RequiresPayment())
}
