package get_client_appointments

import (
	"context"

	"github.com/m04kA/BRB-AppointmentService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByClient(ctx context.Context, clientID string) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
