package events

import (
	"sync"
	"time"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
)

// Типы доменных событий жизненного цикла записи
const (
	TypeAppointmentCreated   = "appointment.created"
	TypeAppointmentCancelled = "appointment.cancelled"
)

// AppointmentEvent доменное событие с данными записи
type AppointmentEvent struct {
	Type        string
	Appointment *domain.Appointment
	OccurredAt  time.Time
}

// Handler обработчик доменного события
type Handler func(event AppointmentEvent)

// Bus внутрипроцессный pub/sub для доменных событий
// Обработчики вызываются синхронно; обработчик сам решает,
// уходить ли в горутину (например, для сетевых вызовов)
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]Handler
}

// NewBus создает пустую шину событий
func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]Handler)}
}

// Subscribe регистрирует обработчик для типа события
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish уведомляет всех подписчиков события
func (b *Bus) Publish(event AppointmentEvent) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	for _, handler := range handlers {
		handler(event)
	}
}
