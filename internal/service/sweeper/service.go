package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	"github.com/m04kA/BRB-AppointmentService/pkg/types"
)

// Service автозавершение прошедших записей.
// Подтвержденная запись на сегодня считается прошедшей, когда с ее
// начала прошло не меньше AutoCompleteToleranceMinutes минут
type Service struct {
	apptRepo     AppointmentRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса автозавершения
func NewService(apptRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		apptRepo:     apptRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// CompleteElapsed переводит прошедшие подтвержденные записи сегодняшнего
// дня в completed. Возвращает число завершенных записей. Идемпотентен:
// повторный запуск не находит уже завершенные записи
func (s *Service) CompleteElapsed(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	cutoffAt := now.Add(-time.Duration(domain.AutoCompleteToleranceMinutes) * time.Minute)
	if cutoffAt.Day() != now.Day() || cutoffAt.Month() != now.Month() || cutoffAt.Year() != now.Year() {
		// раньше 00:30 ни одна сегодняшняя запись еще не могла пройти
		return 0, nil
	}
	cutoff := types.NewTimeString(cutoffAt)

	due, err := s.apptRepo.GetConfirmedDue(ctx, now, cutoff)
	if err != nil {
		s.logger.Error("CompleteElapsed: failed to fetch due appointments: %v", err)
		return 0, fmt.Errorf("%w: CompleteElapsed - fetch due appointments: %v", ErrInternal, err)
	}

	if len(due) == 0 {
		return 0, nil
	}

	s.logger.Info("CompleteElapsed: found %d appointments to complete, cutoff=%s", len(due), cutoff)

	completed := 0
	for _, appt := range due {
		completedAt := now
		if err := s.apptRepo.UpdateStatus(ctx, appt.ID, domain.StatusCompleted, &completedAt); err != nil {
			// одна неудача не останавливает проход, запись доберется
			// на следующем запуске
			s.logger.Error("CompleteElapsed: failed to complete appointment id=%s: %v", appt.ID, err)
			continue
		}
		completed++
	}

	s.logger.Info("CompleteElapsed: completed %d of %d appointments", completed, len(due))
	return completed, nil
}
