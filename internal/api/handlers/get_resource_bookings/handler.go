package get_resource_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/Clinic-SchedulingService/internal/api/handlers"
	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	"github.com/m04kA/Clinic-SchedulingService/internal/service/bookings"
	"github.com/m04kA/Clinic-SchedulingService/internal/service/bookings/models"
)

const (
	msgInvalidResourceKind = "некорректный вид ресурса, ожидается doctor или room"
	msgInvalidResourceID   = "некорректный ID ресурса"
	msgInvalidParams       = "некорректные параметры from/to, ожидается RFC 3339"
	msgInvalidFilter       = "некорректный фильтр"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{kind}/{resourceId}/bookings?from=...&to=...&status=...&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	kind, err := domain.ParseResourceKind(vars["kind"])
	if err != nil {
		h.logger.Warn("GET /resources/{kind}/{id}/bookings - Invalid kind: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceKind)
		return
	}

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{kind}/{id}/bookings - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	query := r.URL.Query()

	serviceReq := &models.GetResourceBookingsRequest{
		ResourceKind:    kind,
		ResourceID:      resourceID,
		IncludeInactive: query.Get("includeInactive") == "true",
	}

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			h.logger.Warn("GET /resources/{kind}/{id}/bookings - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		serviceReq.From = &from
	}

	if toStr := query.Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			h.logger.Warn("GET /resources/{kind}/{id}/bookings - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		serviceReq.To = &to
	}

	if status := query.Get("status"); status != "" {
		serviceReq.Status = &status
	}

	result, err := h.service.GetResourceBookings(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /resources/{kind}/{id}/bookings - Invalid filter: %s/%d", kind, resourceID)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /resources/{kind}/{id}/bookings - Failed: %s/%d, error=%v", kind, resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /resources/{kind}/{id}/bookings - Retrieved successfully: %s/%d, count=%d",
		kind, resourceID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
