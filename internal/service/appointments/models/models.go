package models

import (
	"time"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
)

// AppointmentResponse модель записи для вызывающего слоя
type AppointmentResponse struct {
	ID          string
	ClientID    string
	ClientName  string
	ClientPhone string
	Date        time.Time
	Time        string
	Status      string
	Service     string
	Price       float64
	Notes       *string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse
	Total        int
}

// FromDomainAppointment конвертирует доменную модель в модель сервиса
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          appt.ID,
		ClientID:    appt.ClientID,
		ClientName:  appt.ClientName,
		ClientPhone: appt.ClientPhone,
		Date:        appt.Date,
		Time:        appt.Time.String(),
		Status:      string(appt.Status),
		Service:     appt.Service,
		Price:       appt.Price,
		Notes:       appt.Notes,
		CreatedAt:   appt.CreatedAt,
		CompletedAt: appt.CompletedAt,
	}
}

// FromDomainAppointmentList конвертирует список доменных моделей
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	list := make([]AppointmentResponse, 0, len(appts))
	for _, appt := range appts {
		list = append(list, *FromDomainAppointment(appt))
	}
	return &AppointmentListResponse{
		Appointments: list,
		Total:        len(list),
	}
}
