package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Clinic-SchedulingService/internal/api/handlers"
	"github.com/m04kA/Clinic-SchedulingService/internal/api/middleware"
	rescheduleBooking "github.com/m04kA/Clinic-SchedulingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimestamps  = "некорректный формат startAt/endAt, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotReschedulable   = "бронирование не может быть перенесено"
	msgSlotConflict       = "новый интервал занят, бронирование осталось без изменений"
	msgInvalidInterval    = "некорректный интервал: начало должно быть раньше конца"
	msgTooLateToBook      = "слишком поздно для переноса на этот интервал"
	msgDateTooFar         = "новая дата бронирования слишком далеко в будущем"
	msgCommitFailure      = "не удалось перенести бронирование, попробуйте позже"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, userID)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Failed to parse timestamps: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamps)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/reschedule - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrNotReschedulable):
			h.logger.Warn("POST /bookings/{id}/reschedule - Not reschedulable: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNotReschedulable)

		case errors.Is(err, rescheduleBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings/{id}/reschedule - Slot conflict: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, rescheduleBooking.ErrInvalidInterval):
			h.logger.Warn("POST /bookings/{id}/reschedule - Invalid interval: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, rescheduleBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings/{id}/reschedule - Too late to book: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, rescheduleBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings/{id}/reschedule - Date too far in future: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, rescheduleBooking.ErrCommitFailure):
			h.logger.Error("POST /bookings/{id}/reschedule - Commit failure: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCommitFailure)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule - Rescheduled successfully: booking_id=%d, new_group=%s",
		bookingID, result.GroupID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
