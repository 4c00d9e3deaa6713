package domain

import (
	"time"

	"github.com/m04kA/BRB-AppointmentService/pkg/types"
)

// Break is a non-bookable interval inside a working day, half-open [Start, End)
type Break struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// Contains reports whether t falls inside the break (Start <= t < End)
func (b Break) Contains(t types.TimeString) bool {
	return !t.IsBefore(b.Start) && t.IsBefore(b.End)
}

// WorkingHours holds the operating window for one weekday (0 = Sunday ... 6 = Saturday)
type WorkingHours struct {
	ID          int64
	DayOfWeek   int
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
	Breaks      []Break

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailabilitySlot is the persisted booking flag for one (date, time) pair.
// Absence of a row for a pair means the slot is available.
type AvailabilitySlot struct {
	ID       int64
	Date     string // YYYY-MM-DD
	Time     types.TimeString
	IsBooked bool
}

// DefaultWorkingHours returns the initial schedule used when none is
// configured yet: Monday-Saturday 09:00-18:00 open, Sunday closed
func DefaultWorkingHours() []WorkingHours {
	hours := make([]WorkingHours, 0, 7)
	for day := 0; day <= 6; day++ {
		hours = append(hours, WorkingHours{
			DayOfWeek:   day,
			StartTime:   "09:00",
			EndTime:     "18:00",
			IsAvailable: day != 0, // Sunday closed
		})
	}
	return hours
}
