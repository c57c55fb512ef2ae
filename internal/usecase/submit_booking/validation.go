package submit_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные заявки
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	switch req.Source {
	case domain.SourceAppointment:
		if req.DoctorID == nil {
			return fmt.Errorf("%w: doctorID is required for appointments", ErrInvalidInput)
		}
		if *req.DoctorID <= 0 {
			return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
		}
		if req.RoomID != nil && *req.RoomID <= 0 {
			return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
		}
	case domain.SourceRental:
		if req.RoomID == nil {
			return fmt.Errorf("%w: roomID is required for rentals", ErrInvalidInput)
		}
		if *req.RoomID <= 0 {
			return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
		}
		if req.DoctorID != nil {
			return fmt.Errorf("%w: doctorID is not allowed for rentals", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidInput, req.Source)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateNotice проверяет, что начало не нарушает minBookingNoticeMinutes
func validateNotice(startAt, now time.Time, minBookingNoticeMinutes int) error {
	minAllowed := now.Add(time.Duration(minBookingNoticeMinutes) * time.Minute)
	if startAt.Before(minAllowed) {
		return fmt.Errorf("%w: must book at least %d minutes in advance",
			ErrTooLateToBook, minBookingNoticeMinutes)
	}
	return nil
}

// validateAdvance проверяет, что дата начала не превышает горизонт бронирования
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
