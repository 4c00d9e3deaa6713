package update_slot_interval

import (
	"errors"
	"net/http"

	"github.com/m04kA/BRB-AppointmentService/internal/api/handlers"
	"github.com/m04kA/BRB-AppointmentService/internal/service/schedule"
	"github.com/m04kA/BRB-AppointmentService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInterval    = "длительность слота должна быть от 5 до 480 минут"
)

// UpdateSlotIntervalRequest HTTP request model
type UpdateSlotIntervalRequest struct {
	IntervalMinutes int `json:"intervalMinutes"`
}

// SlotIntervalResponse HTTP response model
type SlotIntervalResponse struct {
	IntervalMinutes int `json:"intervalMinutes"`
}

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

// Handle PUT /api/v1/schedule/slot-interval
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateSlotIntervalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/slot-interval - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSlotInterval(r.Context(), &models.UpdateSlotIntervalRequest{
		IntervalMinutes: req.IntervalMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInterval):
			h.logger.Warn("PUT /schedule/slot-interval - Invalid interval: %d", req.IntervalMinutes)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("PUT /schedule/slot-interval - Failed to update interval: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, SlotIntervalResponse{IntervalMinutes: result.IntervalMinutes})
}
