package get_slot_interval

import (
	"net/http"

	"github.com/m04kA/BRB-AppointmentService/internal/api/handlers"
)

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

// Handle GET /api/v1/schedule/slot-interval
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetSlotInterval(r.Context())
	if err != nil {
		h.logger.Error("GET /schedule/slot-interval - Failed to get interval: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, SlotIntervalResponse{IntervalMinutes: result.IntervalMinutes})
}
