package notifier

// Notification модель уведомления для сервиса доставки
// Сервис доставки сам решает, какие каналы использовать (push, email)
type Notification struct {
	Event       string  `json:"event"` // appointment.created | appointment.cancelled
	Appointment Payload `json:"appointment"`
}

// Payload данные записи в уведомлении
type Payload struct {
	ID          string  `json:"id"`
	ClientID    string  `json:"client_id"`
	ClientName  string  `json:"client_name"`
	ClientPhone string  `json:"client_phone"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Time        string  `json:"time"` // HH:MM
	Service     string  `json:"service"`
	Price       float64 `json:"price"`
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
