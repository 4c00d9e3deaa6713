package models

import (
	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	"github.com/m04kA/BRB-AppointmentService/pkg/types"
)

// BreakData перерыв в рабочем дне
type BreakData struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// DayWorkingHours рабочие часы одного дня недели
type DayWorkingHours struct {
	DayOfWeek   int              `json:"day_of_week"`
	StartTime   types.TimeString `json:"start_time"`
	EndTime     types.TimeString `json:"end_time"`
	IsAvailable bool             `json:"is_available"`
	Breaks      []BreakData      `json:"breaks"`
}

// WorkingHoursResponse расписание на всю неделю
type WorkingHoursResponse struct {
	Days []DayWorkingHours `json:"days"`
}

// UpdateWorkingHoursRequest запрос на замену расписания
type UpdateWorkingHoursRequest struct {
	Days []DayWorkingHours `json:"days"`
}

// SlotIntervalResponse текущая длительность слота в минутах
type SlotIntervalResponse struct {
	IntervalMinutes int `json:"interval_minutes"`
}

// UpdateSlotIntervalRequest запрос на смену длительности слота
type UpdateSlotIntervalRequest struct {
	IntervalMinutes int `json:"interval_minutes"`
}

// FromDomainWorkingHours конвертирует доменные рабочие часы в ответ API
func FromDomainWorkingHours(hours []domain.WorkingHours) *WorkingHoursResponse {
	days := make([]DayWorkingHours, 0, len(hours))
	for _, wh := range hours {
		days = append(days, DayWorkingHours{
			DayOfWeek:   wh.DayOfWeek,
			StartTime:   wh.StartTime,
			EndTime:     wh.EndTime,
			IsAvailable: wh.IsAvailable,
			Breaks:      fromDomainBreaks(wh.Breaks),
		})
	}
	return &WorkingHoursResponse{Days: days}
}

// ToDomainWorkingHours конвертирует запрос в доменные рабочие часы
func (r *UpdateWorkingHoursRequest) ToDomainWorkingHours() []domain.WorkingHours {
	hours := make([]domain.WorkingHours, 0, len(r.Days))
	for _, d := range r.Days {
		hours = append(hours, domain.WorkingHours{
			DayOfWeek:   d.DayOfWeek,
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
			IsAvailable: d.IsAvailable,
			Breaks:      toDomainBreaks(d.Breaks),
		})
	}
	return hours
}

func fromDomainBreaks(breaks []domain.Break) []BreakData {
	out := make([]BreakData, 0, len(breaks))
	for _, b := range breaks {
		out = append(out, BreakData{Start: b.Start, End: b.End})
	}
	return out
}

func toDomainBreaks(breaks []BreakData) []domain.Break {
	out := make([]domain.Break, 0, len(breaks))
	for _, b := range breaks {
		out = append(out, domain.Break{Start: b.Start, End: b.End})
	}
	return out
}
