package update_slot_interval

import (
	"context"

	"github.com/m04kA/BRB-AppointmentService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateSlotInterval(ctx context.Context, req *models.UpdateSlotIntervalRequest) (*models.SlotIntervalResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
