package regenerate_slots

import (
	"context"
	"time"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
)

// ScheduleRepository интерфейс репозитория рабочих часов
type ScheduleRepository interface {
	GetAll(ctx context.Context) ([]domain.WorkingHours, error)
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetSlotInterval(ctx context.Context, key string) (int, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	DeleteRange(ctx context.Context, from, to string) error
	BulkInsert(ctx context.Context, slots []domain.AvailabilitySlot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
