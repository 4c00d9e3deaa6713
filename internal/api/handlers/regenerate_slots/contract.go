package regenerate_slots

import (
	"context"

	regenerateSlots "github.com/m04kA/BRB-AppointmentService/internal/usecase/regenerate_slots"
)

type RegenerateSlotsUseCase interface {
	Execute(ctx context.Context, req *regenerateSlots.Request) (*regenerateSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
