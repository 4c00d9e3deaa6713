package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	"github.com/m04kA/BRB-AppointmentService/pkg/types"
)

type mockApptRepo struct {
	mock.Mock
}

func (m *mockApptRepo) GetConfirmedDue(ctx context.Context, date time.Time, cutoff types.TimeString) ([]*domain.Appointment, error) {
	args := m.Called(ctx, date, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *mockApptRepo) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, completedAt *time.Time) error {
	return m.Called(ctx, id, status, completedAt).Error(0)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService(repo *mockApptRepo, now time.Time) *Service {
	svc := NewService(repo, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}
	return svc
}

func TestCompleteElapsed_CompletesDueAppointments(t *testing.T) {
	repo := &mockApptRepo{}
	now := time.Date(2026, 3, 2, 14, 45, 0, 0, time.UTC)

	due := []*domain.Appointment{
		{ID: "a1", Status: domain.StatusConfirmed, Time: "13:00"},
		{ID: "a2", Status: domain.StatusConfirmed, Time: "14:00"},
	}
	// 14:45 минус 30 минут допуска: завершаются записи на 14:15 и раньше
	repo.On("GetConfirmedDue", mock.Anything, now, types.TimeString("14:15")).Return(due, nil)
	repo.On("UpdateStatus", mock.Anything, "a1", domain.StatusCompleted, mock.Anything).Return(nil)
	repo.On("UpdateStatus", mock.Anything, "a2", domain.StatusCompleted, mock.Anything).Return(nil)

	svc := newTestService(repo, now)

	n, err := svc.CompleteElapsed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	repo.AssertExpectations(t)
}

func TestCompleteElapsed_NothingDue(t *testing.T) {
	repo := &mockApptRepo{}
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo.On("GetConfirmedDue", mock.Anything, now, types.TimeString("08:30")).
		Return([]*domain.Appointment{}, nil)

	svc := newTestService(repo, now)

	n, err := svc.CompleteElapsed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteElapsed_EarlyMorningSkipsQuery(t *testing.T) {
	repo := &mockApptRepo{}
	// 00:10: окно допуска уходит во вчерашний день
	now := time.Date(2026, 3, 2, 0, 10, 0, 0, time.UTC)

	svc := newTestService(repo, now)

	n, err := svc.CompleteElapsed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	repo.AssertNotCalled(t, "GetConfirmedDue", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteElapsed_PartialFailureContinues(t *testing.T) {
	repo := &mockApptRepo{}
	now := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)

	due := []*domain.Appointment{
		{ID: "a1", Status: domain.StatusConfirmed, Time: "14:00"},
		{ID: "a2", Status: domain.StatusConfirmed, Time: "15:00"},
	}
	repo.On("GetConfirmedDue", mock.Anything, now, types.TimeString("15:30")).Return(due, nil)
	repo.On("UpdateStatus", mock.Anything, "a1", domain.StatusCompleted, mock.Anything).
		Return(errors.New("deadlock"))
	repo.On("UpdateStatus", mock.Anything, "a2", domain.StatusCompleted, mock.Anything).Return(nil)

	svc := newTestService(repo, now)

	n, err := svc.CompleteElapsed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	repo.AssertExpectations(t)
}

func TestCompleteElapsed_FetchErrorWrapped(t *testing.T) {
	repo := &mockApptRepo{}
	now := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)
	repo.On("GetConfirmedDue", mock.Anything, now, types.TimeString("15:30")).
		Return(nil, errors.New("connection refused"))

	svc := newTestService(repo, now)

	_, err := svc.CompleteElapsed(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}
