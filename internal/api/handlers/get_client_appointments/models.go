package get_client_appointments

import (
	"time"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	"github.com/m04kA/BRB-AppointmentService/internal/service/appointments/models"
)

// AppointmentResponse HTTP модель одной записи в списке
type AppointmentResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Status      string  `json:"status"`
	Service     string  `json:"service"`
	Price       float64 `json:"price"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	CompletedAt *string `json:"completedAt,omitempty"`
}

// AppointmentListResponse HTTP response model
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.AppointmentListResponse) *AppointmentListResponse {
	appts := make([]AppointmentResponse, 0, len(resp.Appointments))
	for _, a := range resp.Appointments {
		var completedAt *string
		if a.CompletedAt != nil {
			s := a.CompletedAt.Format(time.RFC3339)
			completedAt = &s
		}
		appts = append(appts, AppointmentResponse{
			ID:          a.ID,
			Date:        a.Date.Format(domain.DateFormat),
			Time:        a.Time,
			Status:      a.Status,
			Service:     a.Service,
			Price:       a.Price,
			Notes:       a.Notes,
			CreatedAt:   a.CreatedAt.Format(time.RFC3339),
			CompletedAt: completedAt,
		})
	}
	return &AppointmentListResponse{
		Appointments: appts,
		Total:        resp.Total,
	}
}
