package get_day_appointments

import (
	"context"
	"time"

	"github.com/m04kA/BRB-AppointmentService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByDate(ctx context.Context, date time.Time) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
