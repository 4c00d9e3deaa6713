package update_working_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/BRB-AppointmentService/internal/api/handlers"
	"github.com/m04kA/BRB-AppointmentService/internal/service/schedule"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidWorkingHours = "некорректное расписание рабочих часов"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/schedule/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateWorkingHours(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidWorkingHours):
			h.logger.Warn("PUT /schedule/working-hours - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWorkingHours)

		default:
			h.logger.Error("PUT /schedule/working-hours - Failed to update schedule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
