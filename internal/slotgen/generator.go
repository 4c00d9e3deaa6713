package slotgen

import (
	"errors"
	"fmt"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	"github.com/m04kA/BRB-AppointmentService/pkg/types"
)

var (
	// ErrInvalidInterval возвращается при неположительном интервале слотов
	ErrInvalidInterval = errors.New("slotgen: interval must be positive")

	// ErrInvalidWorkingHours возвращается при некорректном окне рабочего дня
	ErrInvalidWorkingHours = errors.New("slotgen: invalid working hours")
)

// Generate возвращает упорядоченный список кандидатов времени начала слотов
// для одного дня по его рабочим часам и интервалу в минутах.
//
// Правила:
//   - закрытый день (IsAvailable=false) дает пустой список;
//   - слоты идут от StartTime с шагом intervalMinutes, последний слот
//     должен целиком помещаться в [StartTime, EndTime) - неполный шаг
//     в конце дня не выдается;
//   - кандидат t исключается, если попадает в перерыв: break.Start <= t < break.End.
//
// Чистая функция: никаких побочных эффектов, результат детерминирован
func Generate(wh domain.WorkingHours, intervalMinutes int) ([]types.TimeString, error) {
	if intervalMinutes <= 0 {
		return nil, ErrInvalidInterval
	}

	if !wh.IsAvailable {
		return []types.TimeString{}, nil
	}

	start, err := wh.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: start time: %v", ErrInvalidWorkingHours, err)
	}
	end, err := wh.EndTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: end time: %v", ErrInvalidWorkingHours, err)
	}

	slots := make([]types.TimeString, 0)

	for current := start; current+intervalMinutes <= end; current += intervalMinutes {
		candidate, err := types.NewTimeStringFromMinutes(current)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWorkingHours, err)
		}

		if inBreak(candidate, wh.Breaks) {
			continue
		}

		slots = append(slots, candidate)
	}

	return slots, nil
}

// inBreak проверяет, попадает ли кандидат в один из перерывов
func inBreak(t types.TimeString, breaks []domain.Break) bool {
	for _, b := range breaks {
		if b.Contains(t) {
			return true
		}
	}
	return false
}
