package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	"github.com/m04kA/BRB-AppointmentService/internal/events"
	scheduleRepo "github.com/m04kA/BRB-AppointmentService/internal/infra/storage/schedule"
	settingsRepo "github.com/m04kA/BRB-AppointmentService/internal/infra/storage/settings"
	slotRepo "github.com/m04kA/BRB-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/BRB-AppointmentService/internal/slotgen"
)

// UseCase use case создания записи
type UseCase struct {
	apptRepo     AppointmentRepository
	slotRepo     SlotRepository
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	slotRepo SlotRepository,
	scheduleRepo ScheduleRepository,
	settingsRepo SettingsRepository,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		slotRepo:     slotRepo,
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания записи.
// Слот захватывается одним атомарным условным апдейтом, запись
// создается после захвата; при ошибке сохранения захват компенсируется
// освобождением слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%s, date=%s, time=%s, service=%s",
		req.ClientID, req.Date.Format(domain.DateFormat), req.Time, req.Service)

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	date := req.Date.Format(domain.DateFormat)

	// 2. Проверяем, что время попадает в сетку слотов дня
	if err := uc.validateOnGrid(ctx, req); err != nil {
		return nil, err
	}

	// 3. Захватываем слот: ровно один конкурентный запрос выигрывает
	if err := uc.slotRepo.Claim(ctx, date, req.Time); err != nil {
		if errors.Is(err, slotRepo.ErrSlotTaken) {
			uc.logger.Warn("CreateAppointment: slot date=%s time=%s already taken", date, req.Time)
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("CreateAppointment: failed to claim slot date=%s time=%s: %v", date, req.Time, err)
		return nil, fmt.Errorf("%w: failed to claim slot: %v", ErrInternal, err)
	}

	// 4. Создаем запись со статусом confirmed
	appt := &domain.Appointment{
		ID:          uuid.New().String(),
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Date:        req.Date,
		Time:        req.Time,
		Status:      domain.StatusConfirmed,
		Service:     req.Service,
		Price:       req.Price,
		Notes:       req.Notes,
	}

	created, err := uc.apptRepo.Create(ctx, appt)
	if err != nil {
		// 5. Компенсация: запись не сохранилась, слот не должен
		// остаться занятым
		uc.logger.Error("CreateAppointment: failed to persist appointment, releasing slot date=%s time=%s: %v",
			date, req.Time, err)
		if relErr := uc.slotRepo.Release(ctx, date, req.Time); relErr != nil {
			uc.logger.Error("CreateAppointment: compensation failed, slot date=%s time=%s stuck booked: %v",
				date, req.Time, relErr)
		}
		return nil, fmt.Errorf("%w: failed to persist appointment: %v", ErrInternal, err)
	}

	// 6. Уведомляем подписчиков о новой записи
	uc.publisher.Publish(events.AppointmentEvent{
		Type:        events.TypeAppointmentCreated,
		Appointment: created,
		OccurredAt:  now,
	})

	uc.logger.Info("CreateAppointment: created appointment id=%s for client=%s", created.ID, created.ClientID)
	return newResponse(created), nil
}

// validateOnGrid строит сетку слотов дня и проверяет членство времени
func (uc *UseCase) validateOnGrid(ctx context.Context, req *Request) error {
	interval, err := uc.settingsRepo.GetSlotInterval(ctx, domain.SlotIntervalSettingKey)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingNotFound) {
			interval = domain.DefaultSlotIntervalMinutes
		} else {
			uc.logger.Error("CreateAppointment: failed to get slot interval: %v", err)
			return fmt.Errorf("%w: failed to get slot interval: %v", ErrInternal, err)
		}
	}

	wh, err := uc.scheduleRepo.GetByDay(ctx, int(req.Date.Weekday()))
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
			uc.logger.Warn("CreateAppointment: no working hours for weekday=%d", int(req.Date.Weekday()))
			return ErrDayClosed
		}
		uc.logger.Error("CreateAppointment: failed to get working hours: %v", err)
		return fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	if !wh.IsAvailable {
		uc.logger.Warn("CreateAppointment: weekday=%d is closed", wh.DayOfWeek)
		return ErrDayClosed
	}

	times, err := slotgen.Generate(*wh, interval)
	if err != nil {
		uc.logger.Error("CreateAppointment: slot generation failed: %v", err)
		return fmt.Errorf("%w: slot generation failed: %v", ErrInternal, err)
	}

	if !timesContain(times, req.Time) {
		uc.logger.Warn("CreateAppointment: time=%s is not on the slot grid for weekday=%d", req.Time, wh.DayOfWeek)
		return fmt.Errorf("%w: time %s is not on the slot grid", ErrInvalidTimeSlot, req.Time)
	}

	return nil
}
