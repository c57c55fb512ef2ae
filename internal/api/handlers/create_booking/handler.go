package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/Clinic-SchedulingService/internal/api/handlers"
	getSlotGridHandler "github.com/m04kA/Clinic-SchedulingService/internal/api/handlers/get_slot_grid"
	"github.com/m04kA/Clinic-SchedulingService/internal/api/middleware"
	submitBooking "github.com/m04kA/Clinic-SchedulingService/internal/usecase/submit_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimestamps  = "некорректный формат startAt/endAt, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotConflict       = "выбранный интервал занят"
	msgCommitFailure      = "не удалось зафиксировать бронирование, попробуйте позже"
	msgResourceNotFound   = "ресурс не найден"
	msgLookupFailed       = "справочник клиники недоступен"
	msgInvalidInterval    = "некорректный интервал: начало должно быть раньше конца"
	msgTooLateToBook      = "слишком поздно для бронирования этого интервала"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
)

type Handler struct {
	useCase     SubmitBookingUseCase
	gridUseCase GetSlotGridUseCase
	logger      Logger
}

func NewHandler(useCase SubmitBookingUseCase, gridUseCase GetSlotGridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase:     useCase,
		gridUseCase: gridUseCase,
		logger:      logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse timestamps: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamps)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%d", userID)
			h.respondConflict(w, r, &req)

		case errors.Is(err, submitBooking.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, submitBooking.ErrResourceLookupFailed):
			h.logger.Error("POST /bookings - Lookup failed: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgLookupFailed)

		case errors.Is(err, submitBooking.ErrInvalidInterval):
			h.logger.Warn("POST /bookings - Invalid interval: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, submitBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, submitBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, submitBooking.ErrCommitFailure):
			h.logger.Error("POST /bookings - Commit failure: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCommitFailure)

		default:
			h.logger.Error("POST /bookings - Failed to submit booking: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking committed: group=%s, user_id=%d", result.GroupID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// respondConflict отвечает 409 со свежей сеткой слотов основного ресурса,
// чтобы клиент мог сразу предложить другой интервал
func (h *Handler) respondConflict(w http.ResponseWriter, r *http.Request, req *CreateBookingRequest) {
	response := ConflictResponse{Message: msgSlotConflict}

	if gridReq, ok := req.PrimaryGridRequest(); ok {
		grid, err := h.gridUseCase.Execute(r.Context(), gridReq)
		if err != nil {
			h.logger.Warn("POST /bookings - Failed to build grid for conflict response: %v", err)
		} else {
			response.SlotGrid = getSlotGridHandler.FromUseCaseResponse(grid)
		}
	}

	handlers.RespondJSON(w, http.StatusConflict, response)
}
