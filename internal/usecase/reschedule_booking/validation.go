package reschedule_booking

import (
	"fmt"
	"time"
)

// validateNotice проверяет, что новое начало не нарушает minBookingNoticeMinutes
func validateNotice(startAt, now time.Time, minBookingNoticeMinutes int) error {
	minAllowed := now.Add(time.Duration(minBookingNoticeMinutes) * time.Minute)
	if startAt.Before(minAllowed) {
		return fmt.Errorf("%w: must book at least %d minutes in advance",
			ErrTooLateToBook, minBookingNoticeMinutes)
	}
	return nil
}

// validateAdvance проверяет, что новая дата начала не превышает горизонт бронирования
func validateAdvance(startAt, now time.Time, advanceBookingDays int) error {
	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays+1)

	if !startAt.Before(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
