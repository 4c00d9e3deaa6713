package update_working_hours

import (
	"github.com/m04kA/BRB-AppointmentService/internal/service/schedule/models"
	"github.com/m04kA/BRB-AppointmentService/pkg/types"
)

// BreakRequest перерыв в HTTP запросе
type BreakRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayRequest рабочие часы одного дня в HTTP запросе
type DayRequest struct {
	DayOfWeek   int            `json:"dayOfWeek"`
	StartTime   string         `json:"startTime"`
	EndTime     string         `json:"endTime"`
	IsAvailable bool           `json:"isAvailable"`
	Breaks      []BreakRequest `json:"breaks"`
}

// UpdateWorkingHoursRequest HTTP request model
type UpdateWorkingHoursRequest struct {
	Days []DayRequest `json:"days"`
}

// WorkingHoursResponse HTTP response model
type WorkingHoursResponse struct {
	Days []DayResponse `json:"days"`
}

// DayResponse рабочие часы одного дня в HTTP ответе
type DayResponse struct {
	DayOfWeek   int            `json:"dayOfWeek"`
	StartTime   string         `json:"startTime"`
	EndTime     string         `json:"endTime"`
	IsAvailable bool           `json:"isAvailable"`
	Breaks      []BreakRequest `json:"breaks"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateWorkingHoursRequest) ToServiceRequest() *models.UpdateWorkingHoursRequest {
	days := make([]models.DayWorkingHours, 0, len(r.Days))
	for _, d := range r.Days {
		breaks := make([]models.BreakData, 0, len(d.Breaks))
		for _, b := range d.Breaks {
			breaks = append(breaks, models.BreakData{
				Start: types.TimeString(b.Start),
				End:   types.TimeString(b.End),
			})
		}
		days = append(days, models.DayWorkingHours{
			DayOfWeek:   d.DayOfWeek,
			StartTime:   types.TimeString(d.StartTime),
			EndTime:     types.TimeString(d.EndTime),
			IsAvailable: d.IsAvailable,
			Breaks:      breaks,
		})
	}
	return &models.UpdateWorkingHoursRequest{Days: days}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.WorkingHoursResponse) *WorkingHoursResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		breaks := make([]BreakRequest, 0, len(d.Breaks))
		for _, b := range d.Breaks {
			breaks = append(breaks, BreakRequest{Start: b.Start.String(), End: b.End.String()})
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
