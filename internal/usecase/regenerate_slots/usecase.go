package regenerate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	settingsRepo "github.com/m04kA/BRB-AppointmentService/internal/infra/storage/settings"
	"github.com/m04kA/BRB-AppointmentService/internal/slotgen"
)

const maxRegenerationDays = 365

// UseCase use case полной регенерации сетки слотов.
// Используется администратором после смены длительности слота, когда
// сетку нужно перестроить без замены расписания
type UseCase struct {
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	settingsRepo SettingsRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case регенерации.
// Удаление старой сетки и вставка новой идут в одной serializable
// транзакции: конкурентный захват слота либо видит старую сетку
// целиком, либо новую
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация горизонта
	days := req.Days
	if days == 0 {
		days = domain.RegenerationDays
	}
	if days < 0 || days > maxRegenerationDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, maxRegenerationDays)
	}

	uc.logger.Info("RegenerateSlots: horizon=%d days", days)

	// 2. Длительность слота
	interval, err := uc.settingsRepo.GetSlotInterval(ctx, domain.SlotIntervalSettingKey)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingNotFound) {
			interval = domain.DefaultSlotIntervalMinutes
		} else {
			uc.logger.Error("RegenerateSlots: failed to get slot interval: %v", err)
			return nil, fmt.Errorf("%w: failed to get slot interval: %v", ErrInternal, err)
		}
	}

	// 3. Расписание недели
	hours, err := uc.scheduleRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("RegenerateSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	byDay := make(map[int]domain.WorkingHours, len(hours))
	for _, wh := range hours {
		byDay[wh.DayOfWeek] = wh
	}

	// 4. Строим новую сетку по дням горизонта
	today := uc.timeProvider.Now()
	from := today.Format(domain.DateFormat)
	to := today.AddDate(0, 0, days-1).Format(domain.DateFormat)

	var slots []domain.AvailabilitySlot
	for i := 0; i < days; i++ {
		day := today.AddDate(0, 0, i)
		wh, ok := byDay[int(day.Weekday())]
		if !ok {
			continue
		}

		times, err := slotgen.Generate(wh, interval)
		if err != nil {
			uc.logger.Error("RegenerateSlots: generation failed for weekday=%d: %v", wh.DayOfWeek, err)
			return nil, fmt.Errorf("%w: slot generation failed: %v", ErrInternal, err)
		}

		date := day.Format(domain.DateFormat)
		for _, t := range times {
			slots = append(slots, domain.AvailabilitySlot{Date: date, Time: t, IsBooked: false})
		}
	}

	// 5. Замена сетки атомарно
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.slotRepo.DeleteRange(txCtx, from, to); err != nil {
			return fmt.Errorf("delete slot range: %w", err)
		}
		if len(slots) == 0 {
			return nil
		}
		return uc.slotRepo.BulkInsert(txCtx, slots)
	})
	if err != nil {
		uc.logger.Error("RegenerateSlots: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("RegenerateSlots: created %d slots from %s to %s, interval=%d", len(slots), from, to, interval)
	return &Response{
		Days:            days,
		SlotsCreated:    len(slots),
		IntervalMinutes: interval,
		From:            from,
		To:              to,
	}, nil
}
