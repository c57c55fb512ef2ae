package update_schedule_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Clinic-SchedulingService/internal/api/handlers"
	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
	configService "github.com/m04kA/Clinic-SchedulingService/internal/service/config"
)

const (
	msgInvalidResourceKind = "некорректный вид ресурса, ожидается doctor или room"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidConfig       = "некорректная конфигурация расписания"
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

// Handle PUT /api/v1/resources/{kind}/config
// Создает или обновляет конфигурацию вида ресурсов либо конкретного
// ресурса (при указанном resourceId в теле запроса)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	kind, err := domain.ParseResourceKind(vars["kind"])
	if err != nil {
		h.logger.Warn("PUT /resources/{kind}/config - Invalid kind: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceKind)
		return
	}

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /resources/{kind}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertConfig(r.Context(), req.ToServiceRequest(kind))
	if err != nil {
		if errors.Is(err, configService.ErrInvalidInput) {
			h.logger.Warn("PUT /resources/{kind}/config - Invalid config: kind=%s, error=%v", kind, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)
			return
		}
		h.logger.Error("PUT /resources/{kind}/config - Failed: kind=%s, error=%v", kind, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /resources/{kind}/config - Config upserted: id=%d, kind=%s", result.ID, kind)
	handlers.RespondJSON(w, http.StatusOK, result)
}
