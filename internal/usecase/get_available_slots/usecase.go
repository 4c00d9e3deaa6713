package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	scheduleRepo "github.com/m04kA/BRB-AppointmentService/internal/infra/storage/schedule"
	settingsRepo "github.com/m04kA/BRB-AppointmentService/internal/infra/storage/settings"
	"github.com/m04kA/BRB-AppointmentService/internal/slotgen"
)

// UseCase use case получения доступных слотов на дату
type UseCase struct {
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	slotRepo     SlotRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	settingsRepo SettingsRepository,
	slotRepo SlotRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		slotRepo:     slotRepo,
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов.
// Сетка строится из расписания на лету и сливается с сохраненными
// флагами занятости: отсутствие строки означает свободный слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := req.Date.Format(domain.DateFormat)
	uc.logger.Info("GetAvailableSlots: date=%s", date)

	// 2. Длительность слота (отсутствие настройки = дефолтные 30 минут)
	interval, err := uc.settingsRepo.GetSlotInterval(ctx, domain.SlotIntervalSettingKey)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingNotFound) {
			interval = domain.DefaultSlotIntervalMinutes
		} else {
			uc.logger.Error("GetAvailableSlots: failed to get slot interval: %v", err)
			return nil, fmt.Errorf("%w: failed to get slot interval: %v", ErrInternal, err)
		}
	}

	// 3. Рабочие часы дня недели: отсутствие строки = выходной
	wh, err := uc.scheduleRepo.GetByDay(ctx, int(req.Date.Weekday()))
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
			uc.logger.Info("GetAvailableSlots: no working hours for weekday=%d, returning empty", int(req.Date.Weekday()))
			return &Response{Date: req.Date, IntervalMinutes: interval, Slots: []Slot{}}, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	// 4. Генерируем сетку слотов из расписания
	times, err := slotgen.Generate(*wh, interval)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: slot generation failed: %v", err)
		return nil, fmt.Errorf("%w: slot generation failed: %v", ErrInternal, err)
	}

	if len(times) == 0 {
		return &Response{Date: req.Date, IntervalMinutes: interval, Slots: []Slot{}}, nil
	}

	// 5. Дописываем недостающие строки сетки, не трогая занятые
	if err := uc.slotRepo.UpsertGenerated(ctx, date, times); err != nil {
		uc.logger.Error("GetAvailableSlots: failed to upsert generated slots: %v", err)
		return nil, fmt.Errorf("%w: failed to upsert generated slots: %v", ErrInternal, err)
	}

	// 6. Читаем сохраненные флаги занятости
	booked, err := uc.slotRepo.GetByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get slot flags: %v", err)
		return nil, fmt.Errorf("%w: failed to get slot flags: %v", ErrInternal, err)
	}

	// 7. Слияние: слот доступен, если строки нет или is_booked=false
	slots := make([]Slot, 0, len(times))
	for _, t := range times {
		slots = append(slots, Slot{
			Time:        t,
			IsAvailable: !booked[t],
		})
	}

	uc.logger.Info("GetAvailableSlots: date=%s, interval=%d, slots=%d", date, interval, len(slots))
	return &Response{
		Date:            req.Date,
		IntervalMinutes: interval,
		Slots:           slots,
	}, nil
}
