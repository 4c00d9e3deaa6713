package create_appointment

import (
	"time"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	"github.com/m04kA/BRB-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID    string           // ID клиента (из заголовка авторизации)
	ClientName  string           // Имя клиента
	ClientPhone string           // Телефон клиента
	Date        time.Time        // Дата записи (без времени)
	Time        types.TimeString // Время начала слота (например, "10:00")
	Service     string           // Название услуги
	Price       float64          // Цена услуги
	Notes       *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID          string           // ID созданной записи
	ClientID    string           // ID клиента
	ClientName  string           // Имя клиента
	ClientPhone string           // Телефон клиента
	Date        time.Time        // Дата записи
	Time        types.TimeString // Время начала
	Status      string           // Статус записи
	Service     string           // Название услуги
	Price       float64          // Цена услуги
	Notes       *string          // Пожелания
	CreatedAt   time.Time        // Время создания
}

func newResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:          appt.ID,
		ClientID:    appt.ClientID,
		ClientName:  appt.ClientName,
		ClientPhone: appt.ClientPhone,
		Date:        appt.Date,
		Time:        appt.Time,
		Status:      string(appt.Status),
		Service:     appt.Service,
		Price:       appt.Price,
		Notes:       appt.Notes,
		CreatedAt:   appt.CreatedAt,
	}
}
