package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	"github.com/m04kA/BRB-AppointmentService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.ClientID == "" {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}
	if req.ClientName == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if req.Service == "" {
		return fmt.Errorf("%w: service is required", ErrInvalidInput)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: time %q is malformed", ErrInvalidTimeSlot, req.Time)
	}

	today := now.Format(domain.DateFormat)
	date := req.Date.Format(domain.DateFormat)
	if date < today {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, date)
	}
	if date == today {
		nowTime := now.Format(domain.TimeFormat)
		if req.Time.String() <= nowTime {
			return fmt.Errorf("%w: time %s has already passed", ErrInvalidDate, req.Time)
		}
	}

	return nil
}

// timesContain проверяет, что время входит в сетку слотов дня
func timesContain(times []types.TimeString, t types.TimeString) bool {
	for _, slot := range times {
		if slot == t {
			return true
		}
	}
	return false
}
