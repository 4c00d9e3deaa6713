package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	scheduleRepo "github.com/m04kA/BRB-AppointmentService/internal/infra/storage/schedule"
	settingsRepo "github.com/m04kA/BRB-AppointmentService/internal/infra/storage/settings"
	"github.com/m04kA/BRB-AppointmentService/pkg/types"
)

type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) GetByDay(ctx context.Context, dayOfWeek int) (*domain.WorkingHours, error) {
	args := m.Called(ctx, dayOfWeek)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkingHours), args.Error(1)
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

func (m *mockSlotRepo) GetByDate(ctx context.Context, date string) (map[types.TimeString]bool, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[types.TimeString]bool), args.Error(1)
}

func (m *mockSlotRepo) UpsertGenerated(ctx context.Context, date string, times []types.TimeString) error {
	return m.Called(ctx, date, times).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// понедельник
var testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestExecute_MergesStoredFlags(t *testing.T) {
	sched := &mockScheduleRepo{}
	settings := &mockSettingsRepo{}
	slots := &mockSlotRepo{}

	settings.On("GetSlotInterval", mock.Anything, domain.SlotIntervalSettingKey).Return(30, nil)
	sched.On("GetByDay", mock.Anything, 1).Return(&domain.WorkingHours{
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "11:00",
		IsAvailable: true,
	}, nil)
	slots.On("UpsertGenerated", mock.Anything, "2026-03-02",
		[]types.TimeString{"09:00", "09:30", "10:00", "10:30"}).Return(nil)
	slots.On("GetByDate", mock.Anything, "2026-03-02").Return(map[types.TimeString]bool{
		"09:30": true,
		"10:00": false,
	}, nil)

	uc := NewUseCase(sched, settings, slots, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)
	assert.Equal(t, 30, resp.IntervalMinutes)
	require.Len(t, resp.Slots, 4)

	assert.Equal(t, Slot{Time: "09:00", IsAvailable: true}, resp.Slots[0])
	assert.Equal(t, Slot{Time: "09:30", IsAvailable: false}, resp.Slots[1])
	assert.Equal(t, Slot{Time: "10:00", IsAvailable: true}, resp.Slots[2])
	assert.Equal(t, Slot{Time: "10:30", IsAvailable: true}, resp.Slots[3])
	slots.AssertExpectations(t)
}

func TestExecute_MissingIntervalDefaultsTo30(t *testing.T) {
	sched := &mockScheduleRepo{}
	settings := &mockSettingsRepo{}
	slots := &mockSlotRepo{}

	settings.On("GetSlotInterval", mock.Anything, domain.SlotIntervalSettingKey).
		Return(0, settingsRepo.ErrSettingNotFound)
	sched.On("GetByDay", mock.Anything, 1).Return(&domain.WorkingHours{
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "10:00",
		IsAvailable: true,
	}, nil)
	slots.On("UpsertGenerated", mock.Anything, "2026-03-02",
		[]types.TimeString{"09:00", "09:30"}).Return(nil)
	slots.On("GetByDate", mock.Anything, "2026-03-02").
		Return(map[types.TimeString]bool{}, nil)

	uc := NewUseCase(sched, settings, slots, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotIntervalMinutes, resp.IntervalMinutes)
	assert.Len(t, resp.Slots, 2)
}

func TestExecute_ClosedDayReturnsEmpty(t *testing.T) {
	sched := &mockScheduleRepo{}
	settings := &mockSettingsRepo{}
	slots := &mockSlotRepo{}

	settings.On("GetSlotInterval", mock.Anything, domain.SlotIntervalSettingKey).Return(30, nil)
	sched.On("GetByDay", mock.Anything, 0).Return(&domain.WorkingHours{
		DayOfWeek:   0,
		IsAvailable: false,
	}, nil)

	uc := NewUseCase(sched, settings, slots, nopLogger{})

	sunday := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{Date: sunday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	slots.AssertNotCalled(t, "UpsertGenerated", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_MissingWeekdayRowReturnsEmpty(t *testing.T) {
	sched := &mockScheduleRepo{}
	settings := &mockSettingsRepo{}
	slots := &mockSlotRepo{}

	settings.On("GetSlotInterval", mock.Anything, domain.SlotIntervalSettingKey).Return(30, nil)
	sched.On("GetByDay", mock.Anything, 1).Return(nil, scheduleRepo.ErrWorkingHoursNotFound)

	uc := NewUseCase(sched, settings, slots, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BreaksExcluded(t *testing.T) {
	sched := &mockScheduleRepo{}
	settings := &mockSettingsRepo{}
	slots := &mockSlotRepo{}

	settings.On("GetSlotInterval", mock.Anything, domain.SlotIntervalSettingKey).Return(30, nil)
	sched.On("GetByDay", mock.Anything, 1).Return(&domain.WorkingHours{
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "11:00",
		IsAvailable: true,
		Breaks:      []domain.Break{{Start: "10:00", End: "10:30"}},
	}, nil)
	slots.On("UpsertGenerated", mock.Anything, "2026-03-02",
		[]types.TimeString{"09:00", "09:30", "10:30"}).Return(nil)
	slots.On("GetByDate", mock.Anything, "2026-03-02").
		Return(map[types.TimeString]bool{}, nil)

	uc := NewUseCase(sched, settings, slots, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("10:30"), resp.Slots[2].Time)
}

func TestExecute_ZeroDateRejected(t *testing.T) {
	uc := NewUseCase(&mockScheduleRepo{}, &mockSettingsRepo{}, &mockSlotRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
