package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Clinic-SchedulingService/internal/api/handlers"
	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	checkAvailability "github.com/m04kA/Clinic-SchedulingService/internal/usecase/check_availability"
)

const (
	msgInvalidResourceKind = "некорректный вид ресурса, ожидается doctor или room"
	msgInvalidResourceID   = "некорректный ID ресурса"
	msgInvalidParams       = "некорректные параметры startAt/endAt, ожидается RFC 3339"
	msgInvalidInterval     = "некорректный интервал: начало должно быть раньше конца"
	msgResourceNotFound    = "ресурс не найден"
	msgLookupFailed        = "справочник клиники недоступен"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{kind}/{resourceId}/availability?startAt=...&endAt=...&excludeBookingId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	kind, err := domain.ParseResourceKind(vars["kind"])
	if err != nil {
		h.logger.Warn("GET /resources/{kind}/{id}/availability - Invalid kind: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceKind)
		return
	}

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{kind}/{id}/availability - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(kind, resourceID,
		query.Get("startAt"), query.Get("endAt"), query.Get("excludeBookingId"))
	if err != nil {
		h.logger.Warn("GET /resources/{kind}/{id}/availability - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{kind}/{id}/availability - Resource not found: %s/%d", kind, resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, checkAvailability.ErrResourceLookupFailed):
			h.logger.Error("GET /resources/{kind}/{id}/availability - Lookup failed: %s/%d, error=%v",
				kind, resourceID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgLookupFailed)

		case errors.Is(err, checkAvailability.ErrInvalidInterval):
			h.logger.Warn("GET /resources/{kind}/{id}/availability - Invalid interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /resources/{kind}/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidResourceID)

		default:
			h.logger.Error("GET /resources/{kind}/{id}/availability - Failed: %s/%d, error=%v",
				kind, resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{kind}/{id}/availability - Checked: %s/%d, available=%t",
		kind, resourceID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
