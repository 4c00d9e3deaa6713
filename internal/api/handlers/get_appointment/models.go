package get_appointment

import (
	"time"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	"github.com/m04kA/BRB-AppointmentService/internal/service/appointments/models"
)

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID          string  `json:"id"`
	ClientID    string  `json:"clientId"`
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Status      string  `json:"status"`
	Service     string  `json:"service"`
	Price       float64 `json:"price"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	CompletedAt *string `json:"completedAt,omitempty"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.AppointmentResponse) *AppointmentResponse {
	var completedAt *string
	if resp.CompletedAt != nil {
		s := resp.CompletedAt.Format(time.RFC3339)
		completedAt = &s
	}
	return &AppointmentResponse{
		ID:          resp.ID,
		ClientID:    resp.ClientID,
		ClientName:  resp.ClientName,
		ClientPhone: resp.ClientPhone,
		Date:        resp.Date.Format(domain.DateFormat),
		Time:        resp.Time,
		Status:      resp.Status,
		Service:     resp.Service,
		Price:       resp.Price,
		Notes:       resp.Notes,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		CompletedAt: completedAt,
	}
}
