package get_available_slots

import (
	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/BRB-AppointmentService/internal/usecase/get_available_slots"
)

// SlotResponse один слот сетки
type SlotResponse struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"isAvailable"`
}

// GetAvailableSlotsResponse HTTP response model
type GetAvailableSlotsResponse struct {
	Date            string         `json:"date"`
	IntervalMinutes int            `json:"intervalMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *GetAvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:        s.Time.String(),
			IsAvailable: s.IsAvailable,
		})
	}
	return &GetAvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		IntervalMinutes: resp.IntervalMinutes,
		Slots:           slots,
	}
}
