package get_working_hours

import (
	"github.com/m04kA/BRB-AppointmentService/internal/service/schedule/models"
)

// BreakResponse перерыв в HTTP ответе
type BreakResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayResponse рабочие часы одного дня
type DayResponse struct {
	DayOfWeek   int             `json:"dayOfWeek"`
	StartTime   string          `json:"startTime"`
	EndTime     string          `json:"endTime"`
	IsAvailable bool            `json:"isAvailable"`
	Breaks      []BreakResponse `json:"breaks"`
}

// WorkingHoursResponse HTTP response model
type WorkingHoursResponse struct {
	Days []DayResponse `json:"days"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.WorkingHoursResponse) *WorkingHoursResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		breaks := make([]BreakResponse, 0, len(d.Breaks))
		for _, b := range d.Breaks {
			breaks = append(breaks, BreakResponse{Start: b.Start.String(), End: b.End.String()})
		}
		days = append(days, DayResponse{
			DayOfWeek:   d.DayOfWeek,
			StartTime:   d.StartTime.String(),
			EndTime:     d.EndTime.String(),
			IsAvailable: d.IsAvailable,
			Breaks:      breaks,
		})
	}
	return &WorkingHoursResponse{Days: days}
}
