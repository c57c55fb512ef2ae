package get_slot_grid

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Clinic-SchedulingService/internal/api/handlers"
	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	getSlotGrid "github.com/m04kA/Clinic-SchedulingService/internal/usecase/get_slot_grid"
)

const (
	msgInvalidResourceKind = "некорректный вид ресурса, ожидается doctor или room"
	msgInvalidResourceID   = "некорректный ID ресурса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgResourceNotFound    = "ресурс не найден"
	msgLookupFailed        = "справочник клиники недоступен"
	msgInvalidBookingDate  = "некорректная дата"
	msgDateTooFar          = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetSlotGridUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotGridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{kind}/{resourceId}/slot-grid?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	kind, err := domain.ParseResourceKind(vars["kind"])
	if err != nil {
		h.logger.Warn("GET /resources/{kind}/{id}/slot-grid - Invalid kind: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceKind)
		return
	}

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{kind}/{id}/slot-grid - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(kind, resourceID, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /resources/{kind}/{id}/slot-grid - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getSlotGrid.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{kind}/{id}/slot-grid - Resource not found: %s/%d", kind, resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, getSlotGrid.ErrResourceLookupFailed):
			h.logger.Error("GET /resources/{kind}/{id}/slot-grid - Lookup failed: %s/%d, error=%v",
				kind, resourceID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgLookupFailed)

		case errors.Is(err, getSlotGrid.ErrInvalidDate):
			h.logger.Warn("GET /resources/{kind}/{id}/slot-grid - Invalid date: %s/%d", kind, resourceID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, getSlotGrid.ErrDateTooFarInFuture):
			h.logger.Warn("GET /resources/{kind}/{id}/slot-grid - Date too far: %s/%d", kind, resourceID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getSlotGrid.ErrInvalidInput):
			h.logger.Warn("GET /resources/{kind}/{id}/slot-grid - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidResourceID)

		default:
			h.logger.Error("GET /resources/{kind}/{id}/slot-grid - Failed: %s/%d, error=%v",
				kind, resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{kind}/{id}/slot-grid - Grid built: %s/%d, slots=%d",
		kind, resourceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
