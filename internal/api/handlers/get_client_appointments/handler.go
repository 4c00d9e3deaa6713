package get_client_appointments

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/BRB-AppointmentService/internal/api/handlers"
	"github.com/m04kA/BRB-AppointmentService/internal/api/middleware"
	"github.com/m04kA/BRB-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clientID := vars["clientId"]
	if clientID == "" {
		h.logger.Warn("GET /clients/{id}/appointments - Missing client ID")
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	// клиент видит только свою историю
	if requester := middleware.UserID(r.Context()); requester != "" && requester != clientID {
		h.logger.Warn("GET /clients/{id}/appointments - Forbidden: client=%s, requester=%s", clientID, requester)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.GetByClient(r.Context(), clientID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /clients/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidClientID)

		default:
			h.logger.Error("GET /clients/{id}/appointments - Failed to get appointments: client=%s, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
