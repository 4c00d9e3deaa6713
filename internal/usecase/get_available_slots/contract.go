package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	"github.com/m04kA/BRB-AppointmentService/pkg/types"
)

// ScheduleRepository интерфейс репозитория рабочих часов
type ScheduleRepository interface {
	GetByDay(ctx context.Context, dayOfWeek int) (*domain.WorkingHours, error)
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetSlotInterval(ctx context.Context, key string) (int, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByDate(ctx context.Context, date string) (map[types.TimeString]bool, error)
	UpsertGenerated(ctx context.Context, date string, times []types.TimeString) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
