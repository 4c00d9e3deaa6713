package cancel_appointment

import (
	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	cancelAppointment "github.com/m04kA/BRB-AppointmentService/internal/usecase/cancel_appointment"
)

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelAppointment.Response) *CancelAppointmentResponse {
	return &CancelAppointmentResponse{
		ID:     resp.ID,
		Date:   resp.Date.Format(domain.DateFormat),
		Time:   resp.Time.String(),
		Status: resp.Status,
	}
}
