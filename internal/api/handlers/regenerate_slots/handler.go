package regenerate_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/BRB-AppointmentService/internal/api/handlers"
	regenerateSlots "github.com/m04kA/BRB-AppointmentService/internal/usecase/regenerate_slots"
)

const msgInvalidDays = "некорректный горизонт регенерации"

// RegenerateSlotsResponse HTTP response model
type RegenerateSlotsResponse struct {
	Days            int    `json:"days"`
	SlotsCreated    int    `json:"slotsCreated"`
	IntervalMinutes int    `json:"intervalMinutes"`
	From            string `json:"from"`
	To              string `json:"to"`
}

type Handler struct {
	useCase RegenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase RegenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/slots/regenerate?days=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	days := 0
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil {
			h.logger.Warn("POST /admin/slots/regenerate - Invalid days %q: %v", daysStr, err)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		days = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &regenerateSlots.Request{Days: days})
	if err != nil {
		switch {
		case errors.Is(err, regenerateSlots.ErrInvalidInput):
			h.logger.Warn("POST /admin/slots/regenerate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)

		default:
			h.logger.Error("POST /admin/slots/regenerate - Failed to regenerate: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, RegenerateSlotsResponse{
		Days:            result.Days,
		SlotsCreated:    result.SlotsCreated,
		IntervalMinutes: result.IntervalMinutes,
		From:            result.From,
		To:              result.To,
	})
}
