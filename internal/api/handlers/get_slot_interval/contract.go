package get_slot_interval

import (
	"context"

	"github.com/m04kA/BRB-AppointmentService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSlotInterval(ctx context.Context) (*models.SlotIntervalResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
