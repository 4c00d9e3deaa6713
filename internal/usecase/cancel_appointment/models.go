package cancel_appointment

import (
	"time"

	"github.com/m04kA/BRB-AppointmentService/pkg/types"
)

// Request модель запроса на отмену записи
type Request struct {
	ID       string // ID записи
	ClientID string // ID клиента-инициатора; пустой для администратора
}

// Response модель ответа с отмененной записью
type Response struct {
	ID     string           // ID записи
	Date   time.Time        // Дата записи
	Time   types.TimeString // Время начала
	Status string           // Итоговый статус (cancelled)
}
