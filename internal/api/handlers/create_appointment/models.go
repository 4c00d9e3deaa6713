package create_appointment

import (
	"time"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/BRB-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/BRB-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	Date        string  `json:"date"` // "2026-03-09"
	Time        string  `json:"time"` // "10:00"
	Service     string  `json:"service"`
	Price       float64 `json:"price"`
	Notes       *string `json:"notes,omitempty"`
}

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
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID string) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:    clientID,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		Date:        date,
		Time:        startTime,
		Service:     r.Service,
		Price:       r.Price,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          resp.ID,
		ClientID:    resp.ClientID,
		ClientName:  resp.ClientName,
		ClientPhone: resp.ClientPhone,
		Date:        resp.Date.Format(domain.DateFormat),
		Time:        resp.Time.String(),
		Status:      resp.Status,
		Service:     resp.Service,
		Price:       resp.Price,
		Notes:       resp.Notes,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
