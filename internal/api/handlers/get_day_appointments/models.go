package get_day_appointments

import (
	"time"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	"github.com/m04kA/BRB-AppointmentService/internal/service/appointments/models"
)

// AppointmentResponse HTTP модель одной записи дня
type AppointmentResponse struct {
	ID          string  `json:"id"`
	ClientID    string  `json:"clientId"`
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	Time        string  `json:"time"`
	Status      string  `json:"status"`
	Service     string  `json:"service"`
	Price       float64 `json:"price"`
	Notes       *string `json:"notes,omitempty"`
}

// DayAppointmentsResponse HTTP response model
type DayAppointmentsResponse struct {
	Date         string                `json:"date"`
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(date time.Time, resp *models.AppointmentListResponse) *DayAppointmentsResponse {
	appts := make([]AppointmentResponse, 0, len(resp.Appointments))
	for _, a := range resp.Appointments {
		appts = append(appts, AppointmentResponse{
			ID:          a.ID,
			ClientID:    a.ClientID,
			ClientName:  a.ClientName,
			ClientPhone: a.ClientPhone,
			Time:        a.Time,
			Status:      a.Status,
			Service:     a.Service,
			Price:       a.Price,
			Notes:       a.Notes,
		})
	}
	return &DayAppointmentsResponse{
		Date:         date.Format(domain.DateFormat),
		Appointments: appts,
		Total:        resp.Total,
	}
}
