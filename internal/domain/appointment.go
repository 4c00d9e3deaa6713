package domain

import (
	"time"

	"github.com/m04kA/BRB-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a client appointment at the barbershop
type Appointment struct {
	ID          string
	ClientID    string
	ClientName  string
	ClientPhone string
	Date        time.Time
	Time        types.TimeString
	Status      AppointmentStatus

	// Denormalized service data for history
	Service string
	Price   float64
	Notes   *string

	CreatedAt   time.Time
	CompletedAt *time.Time
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusConfirmed
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusConfirmed
}

// IsTerminal returns true if the appointment reached a final state
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// StartsAt combines the appointment date and time into a single instant
// in the given location. Date and time are wall-clock values; the date
// column is scanned as midnight UTC regardless of the server zone, so
// the caller supplies the location its clock runs in
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	minutes, err := a.Time.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	day := time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, 0, 0, 0, loc)
	return day.Add(time.Duration(minutes) * time.Minute), nil
}
