package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	settingsRepo "github.com/m04kA/BRB-AppointmentService/internal/infra/storage/settings"
	"github.com/m04kA/BRB-AppointmentService/internal/service/schedule/models"
	"github.com/m04kA/BRB-AppointmentService/internal/slotgen"
)

// Service сервис расписания: рабочие часы недели и длительность слота.
// Замена расписания регенерирует будущие слоты в той же транзакции,
// чтобы сетка никогда не расходилась с рабочими часами
type Service struct {
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	settingsRepo SettingsRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetWorkingHours возвращает расписание недели.
// Пустая таблица засевается дефолтным расписанием (пн-сб 09:00-18:00)
func (s *Service) GetWorkingHours(ctx context.Context) (*models.WorkingHoursResponse, error) {
	hours, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetWorkingHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWorkingHours - repository error: %v", ErrInternal, err)
	}

	if len(hours) == 0 {
		s.logger.Info("GetWorkingHours: schedule is empty, seeding defaults")
		hours = domain.DefaultWorkingHours()
		err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			return s.scheduleRepo.ReplaceAll(txCtx, hours)
		})
		if err != nil {
			s.logger.Error("GetWorkingHours: failed to seed defaults: %v", err)
			return nil, fmt.Errorf("%w: GetWorkingHours - failed to seed defaults: %v", ErrInternal, err)
		}
	}

	return models.FromDomainWorkingHours(hours), nil
}

// UpdateWorkingHours заменяет расписание недели целиком и регенерирует
// слоты на ближайшие дни в одной serializable-транзакции
func (s *Service) UpdateWorkingHours(ctx context.Context, req *models.UpdateWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("UpdateWorkingHours: replacing weekly schedule, days=%d", len(req.Days))

	// 1. Валидация запроса до любых записей в БД
	hours := req.ToDomainWorkingHours()
	if err := validateWorkingHours(hours); err != nil {
		s.logger.Warn("UpdateWorkingHours: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущая длительность слота для регенерации
	interval, err := s.GetSlotInterval(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Замена расписания + регенерация сетки атомарно
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.scheduleRepo.ReplaceAll(txCtx, hours); err != nil {
			return fmt.Errorf("replace schedule: %w", err)
		}
		return s.regenerateSlots(txCtx, hours, interval.IntervalMinutes)
	})
	if err != nil {
		s.logger.Error("UpdateWorkingHours: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: UpdateWorkingHours - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWorkingHours: schedule replaced, slots regenerated for %d days ahead", domain.RegenerationDays)
	return models.FromDomainWorkingHours(hours), nil
}

// GetSlotInterval возвращает длительность слота в минутах.
// Отсутствие настройки трактуется как дефолтные 30 минут
func (s *Service) GetSlotInterval(ctx context.Context) (*models.SlotIntervalResponse, error) {
	interval, err := s.settingsRepo.GetSlotInterval(ctx, domain.SlotIntervalSettingKey)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingNotFound) {
			return &models.SlotIntervalResponse{IntervalMinutes: domain.DefaultSlotIntervalMinutes}, nil
		}
		s.logger.Error("GetSlotInterval: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSlotInterval - repository error: %v", ErrInternal, err)
	}

	return &models.SlotIntervalResponse{IntervalMinutes: interval}, nil
}

// UpdateSlotInterval сохраняет новую длительность слота.
// Существующая сетка не трогается: регенерация запускается отдельной
// админ-операцией
func (s *Service) UpdateSlotInterval(ctx context.Context, req *models.UpdateSlotIntervalRequest) (*models.SlotIntervalResponse, error) {
	s.logger.Info("UpdateSlotInterval: setting interval=%d minutes", req.IntervalMinutes)

	if req.IntervalMinutes < domain.MinSlotIntervalMinutes || req.IntervalMinutes > domain.MaxSlotIntervalMinutes {
		s.logger.Warn("UpdateSlotInterval: interval=%d out of range [%d, %d]",
			req.IntervalMinutes, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
		return nil, fmt.Errorf("%w: interval must be between %d and %d minutes",
			ErrInvalidInterval, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}

	if err := s.settingsRepo.SetSlotInterval(ctx, domain.SlotIntervalSettingKey, req.IntervalMinutes); err != nil {
		s.logger.Error("UpdateSlotInterval: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateSlotInterval - repository error: %v", ErrInternal, err)
	}

	return &models.SlotIntervalResponse{IntervalMinutes: req.IntervalMinutes}, nil
}

// regenerateSlots пересоздает сетку слотов от сегодняшнего дня на
// RegenerationDays вперед. Забронированные слоты удаляются вместе со
// всеми: записи хранят свое время сами и не зависят от сетки
func (s *Service) regenerateSlots(ctx context.Context, hours []domain.WorkingHours, intervalMinutes int) error {
	byDay := make(map[int]domain.WorkingHours, len(hours))
	for _, wh := range hours {
		byDay[wh.DayOfWeek] = wh
	}

	today := s.timeProvider.Now()
	from := today.Format(domain.DateFormat)
	to := today.AddDate(0, 0, domain.RegenerationDays-1).Format(domain.DateFormat)

	if err := s.slotRepo.DeleteRange(ctx, from, to); err != nil {
		return fmt.Errorf("delete slot range: %w", err)
	}

	var slots []domain.AvailabilitySlot
	for i := 0; i < domain.RegenerationDays; i++ {
		day := today.AddDate(0, 0, i)
		wh, ok := byDay[int(day.Weekday())]
		if !ok {
			continue
		}

		times, err := slotgen.Generate(wh, intervalMinutes)
		if err != nil {
			return fmt.Errorf("generate slots for day %d: %w", wh.DayOfWeek, err)
		}

		date := day.Format(domain.DateFormat)
		for _, t := range times {
			slots = append(slots, domain.AvailabilitySlot{
				Date:     date,
				Time:     t,
				IsBooked: false,
			})
		}
	}

	if len(slots) == 0 {
		return nil
	}

	return s.slotRepo.BulkInsert(ctx, slots)
}

// validateWorkingHours проверяет расписание недели перед сохранением
func validateWorkingHours(hours []domain.WorkingHours) error {
	if len(hours) == 0 {
		return fmt.Errorf("%w: schedule must contain at least one day", ErrInvalidWorkingHours)
	}

	seen := make(map[int]bool, len(hours))
	for _, wh := range hours {
		if wh.DayOfWeek < 0 || wh.DayOfWeek > 6 {
			return fmt.Errorf("%w: day_of_week %d is out of range [0, 6]", ErrInvalidWorkingHours, wh.DayOfWeek)
		}
		if seen[wh.DayOfWeek] {
			return fmt.Errorf("%w: duplicate day_of_week %d", ErrInvalidWorkingHours, wh.DayOfWeek)
		}
		seen[wh.DayOfWeek] = true

		if !wh.IsAvailable {
			continue
		}

		if err := validateDayTimes(wh); err != nil {
			return err
		}
	}

	return nil
}

func validateDayTimes(wh domain.WorkingHours) error {
	if err := wh.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: day %d: invalid start_time %q", ErrInvalidWorkingHours, wh.DayOfWeek, wh.StartTime)
	}
	if err := wh.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: day %d: invalid end_time %q", ErrInvalidWorkingHours, wh.DayOfWeek, wh.EndTime)
	}
	if !wh.StartTime.IsBefore(wh.EndTime) {
		return fmt.Errorf("%w: day %d: start_time %s must be before end_time %s",
			ErrInvalidWorkingHours, wh.DayOfWeek, wh.StartTime, wh.EndTime)
	}

	for _, b := range wh.Breaks {
		if err := b.Start.Validate(); err != nil {
			return fmt.Errorf("%w: day %d: invalid break start %q", ErrInvalidWorkingHours, wh.DayOfWeek, b.Start)
		}
		if err := b.End.Validate(); err != nil {
			return fmt.Errorf("%w: day %d: invalid break end %q", ErrInvalidWorkingHours, wh.DayOfWeek, b.End)
		}
		if !b.Start.IsBefore(b.End) {
			return fmt.Errorf("%w: day %d: break start %s must be before end %s",
				ErrInvalidWorkingHours, wh.DayOfWeek, b.Start, b.End)
		}
	}

	return nil
}
