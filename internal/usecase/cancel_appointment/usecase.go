package cancel_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	"github.com/m04kA/BRB-AppointmentService/internal/events"
	apptRepo "github.com/m04kA/BRB-AppointmentService/internal/infra/storage/appointment"
)

// UseCase use case отмены записи
type UseCase struct {
	apptRepo     AppointmentRepository
	slotRepo     SlotRepository
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	slotRepo SlotRepository,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		slotRepo:     slotRepo,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены записи.
// Порядок фиксирован: сначала статус cancelled, потом освобождение
// слота. Падение между шагами оставляет слот занятым, что чинится
// регенерацией; обратный порядок дал бы свободный слот при живой
// подтвержденной записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAppointment: id=%s, client=%s", req.ID, req.ClientID)

	// 1. Валидация входных данных
	if req.ID == "" {
		return nil, fmt.Errorf("%w: appointment id is required", ErrInvalidInput)
	}

	// 2. Загружаем запись
	appt, err := uc.apptRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("CancelAppointment: appointment id=%s not found", req.ID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("CancelAppointment: failed to get appointment id=%s: %v", req.ID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 3. Клиент может отменять только свои записи
	if req.ClientID != "" && appt.ClientID != req.ClientID {
		uc.logger.Warn("CancelAppointment: appointment id=%s belongs to client=%s, not %s",
			req.ID, appt.ClientID, req.ClientID)
		return nil, ErrForbidden
	}

	// 4. Отменять можно только подтвержденную запись
	if !appt.CanBeCancelled() {
		uc.logger.Warn("CancelAppointment: appointment id=%s is %s", req.ID, appt.Status)
		return nil, ErrCannotCancel
	}

	// 5. Окно отмены: до начала должно оставаться строго больше
	// CancellationNoticeMinutes минут. Дата и время записи — значения
	// настенных часов, сравниваем их в зоне серверных часов
	now := uc.timeProvider.Now()
	startsAt, err := appt.StartsAt(now.Location())
	if err != nil {
		uc.logger.Error("CancelAppointment: appointment id=%s has malformed time %q: %v", req.ID, appt.Time, err)
		return nil, fmt.Errorf("%w: malformed appointment time: %v", ErrInternal, err)
	}
	notice := time.Duration(domain.CancellationNoticeMinutes) * time.Minute
	if !startsAt.After(now.Add(notice)) {
		uc.logger.Warn("CancelAppointment: window closed for appointment id=%s, starts at %s", req.ID, startsAt)
		return nil, fmt.Errorf("%w: appointment starts at %s", ErrCancellationWindowClosed, startsAt.Format(time.RFC3339))
	}

	// 6. Сначала статус, затем слот
	if err := uc.apptRepo.UpdateStatus(ctx, req.ID, domain.StatusCancelled, nil); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("CancelAppointment: failed to update status for id=%s: %v", req.ID, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	date := appt.Date.Format(domain.DateFormat)
	if err := uc.slotRepo.Release(ctx, date, appt.Time); err != nil {
		// запись уже отменена, занятый слот доберет регенерация
		uc.logger.Error("CancelAppointment: failed to release slot date=%s time=%s: %v", date, appt.Time, err)
	}

	// 7. Уведомляем подписчиков об отмене
	cancelled := *appt
	cancelled.Status = domain.StatusCancelled
	uc.publisher.Publish(events.AppointmentEvent{
		Type:        events.TypeAppointmentCancelled,
		Appointment: &cancelled,
		OccurredAt:  now,
	})

	uc.logger.Info("CancelAppointment: cancelled appointment id=%s, released slot date=%s time=%s",
		req.ID, date, appt.Time)
	return &Response{
		ID:     appt.ID,
		Date:   appt.Date,
		Time:   appt.Time,
		Status: string(domain.StatusCancelled),
	}, nil
}
