package get_available_slots

import (
	"time"

	"github.com/m04kA/BRB-AppointmentService/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	Date time.Time // Дата без времени
}

// Slot один слот сетки с признаком доступности
type Slot struct {
	Time        types.TimeString // Время начала слота
	IsAvailable bool             // Свободен ли слот
}

// Response модель ответа со слотами на дату
type Response struct {
	Date            time.Time // Запрошенная дата
	IntervalMinutes int       // Действующая длительность слота
	Slots           []Slot    // Слоты в хронологическом порядке
}
