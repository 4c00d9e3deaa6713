package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/BRB-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/BRB-AppointmentService/internal/service/appointments/models"
)

// Service сервис для чтения записей и ручных переходов статусов
// Создание и отмена живут в соответствующих use cases, потому что
// требуют координации со слотами
type Service struct {
	apptRepo     AppointmentRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(apptRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		apptRepo:     apptRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// GetByClient получает историю записей клиента (новые сверху)
func (s *Service) GetByClient(ctx context.Context, clientID string) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetByClient: fetching appointments for client=%s", clientID)

	if clientID == "" {
		return nil, fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	appts, err := s.apptRepo.GetByClientID(ctx, clientID)
	if err != nil {
		s.logger.Error("GetByClient: repository error for client=%s: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetByClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByClient: fetched %d appointments for client=%s", len(appts), clientID)
	return models.FromDomainAppointmentList(appts), nil
}

// GetByDate получает все записи на дату, упорядоченные по времени
// Используется админским дашбордом
func (s *Service) GetByDate(ctx context.Context, date time.Time) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetByDate: fetching appointments for date=%s", date.Format(domain.DateFormat))

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	appts, err := s.apptRepo.GetByDate(ctx, date)
	if err != nil {
		s.logger.Error("GetByDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByDate: fetched %d appointments for date=%s", len(appts), date.Format(domain.DateFormat))
	return models.FromDomainAppointmentList(appts), nil
}

// Complete вручную помечает запись завершенной (действие администратора)
// Слот при этом не освобождается - время уже прошло
func (s *Service) Complete(ctx context.Context, id string) error {
	s.logger.Info("Complete: completing appointment id=%s", id)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Complete: appointment id=%s not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Complete: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	if appt.IsTerminal() {
		s.logger.Warn("Complete: appointment id=%s is already %s", id, appt.Status)
		return ErrAlreadyTerminal
	}

	now := s.timeProvider.Now()
	if err := s.apptRepo.UpdateStatus(ctx, id, domain.StatusCompleted, &now); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Complete: failed to update status for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: successfully completed appointment id=%s", id)
	return nil
}
