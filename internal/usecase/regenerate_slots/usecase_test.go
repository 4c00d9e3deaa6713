package regenerate_slots

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

type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) GetAll(ctx context.Context) ([]domain.WorkingHours, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkingHours), args.Error(1)
}

type mockSettingsRepo struct {
	mock.Mock
}

func (m *mockSettingsRepo) GetSlotInterval(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

type mockSlotRepo struct {
	mock.Mock
}

func (m *mockSlotRepo) DeleteRange(ctx context.Context, from, to string) error {
	return m.Called(ctx, from, to).Error(0)
}

func (m *mockSlotRepo) BulkInsert(ctx context.Context, slots []domain.AvailabilitySlot) error {
	return m.Called(ctx, slots).Error(0)
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func newUC(sched *mockScheduleRepo, settings *mockSettingsRepo, slots *mockSlotRepo) *UseCase {
	uc := NewUseCase(sched, settings, slots, &fakeTxManager{}, nopLogger{})
	// понедельник
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_RebuildsGrid(t *testing.T) {
	sched := &mockScheduleRepo{}
	settings := &mockSettingsRepo{}
	slots := &mockSlotRepo{}

	settings.On("GetSlotInterval", mock.Anything, domain.SlotIntervalSettingKey).Return(60, nil)
	sched.On("GetAll", mock.Anything).Return([]domain.WorkingHours{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00", IsAvailable: true},
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00", IsAvailable: true},
	}, nil)
	slots.On("DeleteRange", mock.Anything, "2026-03-02", "2026-03-08").Return(nil)
	slots.On("BulkInsert", mock.Anything, mock.MatchedBy(func(s []domain.AvailabilitySlot) bool {
		// понедельник дает 2 слота, вторник 1; остальные дни недели без
		// расписания
		return len(s) == 3 &&
			s[0].Date == "2026-03-02" && s[0].Time == types.TimeString("09:00") &&
			s[2].Date == "2026-03-03" && !s[2].IsBooked
	})).Return(nil)

	uc := newUC(sched, settings, slots)

	resp, err := uc.Execute(context.Background(), &Request{Days: 7})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.SlotsCreated)
	assert.Equal(t, 7, resp.Days)
	assert.Equal(t, 60, resp.IntervalMinutes)
	assert.Equal(t, "2026-03-02", resp.From)
	assert.Equal(t, "2026-03-08", resp.To)
	slots.AssertExpectations(t)
}

func TestExecute_DefaultHorizon(t *testing.T) {
	sched := &mockScheduleRepo{}
	settings := &mockSettingsRepo{}
	slots := &mockSlotRepo{}

	settings.On("GetSlotInterval", mock.Anything, domain.SlotIntervalSettingKey).Return(30, nil)
	sched.On("GetAll", mock.Anything).Return([]domain.WorkingHours{}, nil)
	slots.On("DeleteRange", mock.Anything, "2026-03-02", "2026-03-31").Return(nil)

	uc := newUC(sched, settings, slots)

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, domain.RegenerationDays, resp.Days)
	assert.Equal(t, 0, resp.SlotsCreated)
	// пустое расписание: вставлять нечего
	slots.AssertNotCalled(t, "BulkInsert", mock.Anything, mock.Anything)
}

func TestExecute_HorizonOutOfRange(t *testing.T) {
	uc := newUC(&mockScheduleRepo{}, &mockSettingsRepo{}, &mockSlotRepo{})

	for _, days := range []int{-1, 366} {
		_, err := uc.Execute(context.Background(), &Request{Days: days})
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestExecute_TransactionFailure(t *testing.T) {
	sched := &mockScheduleRepo{}
	settings := &mockSettingsRepo{}
	slots := &mockSlotRepo{}

	settings.On("GetSlotInterval", mock.Anything, domain.SlotIntervalSettingKey).Return(30, nil)
	sched.On("GetAll", mock.Anything).Return([]domain.WorkingHours{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", IsAvailable: true},
	}, nil)
	slots.On("DeleteRange", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("serialization failure"))

	uc := newUC(sched, settings, slots)

	_, err := uc.Execute(context.Background(), &Request{Days: 7})
	assert.ErrorIs(t, err, ErrInternal)
}
