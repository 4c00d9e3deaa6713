package run_sweep

import (
	"net/http"

	"github.com/m04kA/BRB-AppointmentService/internal/api/handlers"
)

// RunSweepResponse HTTP response model
type RunSweepResponse struct {
	Completed int `json:"completed"`
}

type Handler struct {
	service SweeperService
	logger  Logger
}

func NewHandler(service SweeperService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/sweep
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	completed, err := h.service.CompleteElapsed(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/sweep - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, RunSweepResponse{Completed: completed})
}
