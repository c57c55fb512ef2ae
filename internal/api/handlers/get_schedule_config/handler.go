package get_schedule_config

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Clinic-SchedulingService/internal/api/handlers"
	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	"github.com/m04kA/Clinic-SchedulingService/pkg/ptr"
)

const (
	msgInvalidResourceKind = "некорректный вид ресурса, ожидается doctor или room"
	msgInvalidResourceID   = "некорректный ID ресурса"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{kind}/{resourceId}/config
// Возвращает эффективную конфигурацию с учетом иерархии:
// конкретный ресурс -> вид ресурсов -> значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	kind, err := domain.ParseResourceKind(vars["kind"])
	if err != nil {
		h.logger.Warn("GET /resources/{kind}/{id}/config - Invalid kind: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceKind)
		return
	}

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{kind}/{id}/config - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	result, err := h.service.GetEffectiveConfig(r.Context(), kind, ptr.Ptr(resourceID))
	if err != nil {
		h.logger.Error("GET /resources/{kind}/{id}/config - Failed: %s/%d, error=%v", kind, resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /resources/{kind}/{id}/config - Config retrieved: %s/%d, source=%s",
		kind, resourceID, result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}
