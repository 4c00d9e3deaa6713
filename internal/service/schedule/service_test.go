package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	settingsRepo "github.com/m04kA/BRB-AppointmentService/internal/infra/storage/settings"
	"github.com/m04kA/BRB-AppointmentService/internal/service/schedule/models"
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

func (m *mockScheduleRepo) ReplaceAll(ctx context.Context, hours []domain.WorkingHours) error {
	return m.Called(ctx, hours).Error(0)
}

type mockSettingsRepo struct {
	mock.Mock
}

func (m *mockSettingsRepo) GetSlotInterval(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

func (m *mockSettingsRepo) SetSlotInterval(ctx context.Context, key string, interval int) error {
	return m.Called(ctx, key, interval).Error(0)
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

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
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

func newTestService(sched *mockScheduleRepo, settings *mockSettingsRepo, slots *mockSlotRepo) *Service {
	svc := NewService(sched, settings, slots, &fakeTxManager{}, nopLogger{})
	// понедельник 2026-03-02
	svc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)}
	return svc
}

func TestGetWorkingHours_ReturnsStored(t *testing.T) {
	sched := &mockScheduleRepo{}
	stored := []domain.WorkingHours{
		{DayOfWeek: 1, StartTime: "10:00", EndTime: "19:00", IsAvailable: true},
	}
	sched.On("GetAll", mock.Anything).Return(stored, nil)

	svc := newTestService(sched, &mockSettingsRepo{}, &mockSlotRepo{})

	resp, err := svc.GetWorkingHours(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, 1, resp.Days[0].DayOfWeek)
	assert.Equal(t, "10:00", resp.Days[0].StartTime.String())
	sched.AssertExpectations(t)
}

func TestGetWorkingHours_SeedsDefaultsWhenEmpty(t *testing.T) {
	sched := &mockScheduleRepo{}
	sched.On("GetAll", mock.Anything).Return([]domain.WorkingHours{}, nil)
	sched.On("ReplaceAll", mock.Anything, domain.DefaultWorkingHours()).Return(nil)

	svc := newTestService(sched, &mockSettingsRepo{}, &mockSlotRepo{})

	resp, err := svc.GetWorkingHours(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)

	// воскресенье закрыто, остальные дни 09:00-18:00
	for _, d := range resp.Days {
		if d.DayOfWeek == 0 {
			assert.False(t, d.IsAvailable)
			continue
		}
		assert.True(t, d.IsAvailable)
		assert.Equal(t, "09:00", d.StartTime.String())
		assert.Equal(t, "18:00", d.EndTime.String())
	}
	sched.AssertExpectations(t)
}

func TestUpdateWorkingHours_ReplacesAndRegenerates(t *testing.T) {
	sched := &mockScheduleRepo{}
	settings := &mockSettingsRepo{}
	slots := &mockSlotRepo{}

	settings.On("GetSlotInterval", mock.Anything, domain.SlotIntervalSettingKey).Return(60, nil)
	sched.On("ReplaceAll", mock.Anything, mock.Anything).Return(nil)
	slots.On("DeleteRange", mock.Anything, "2026-03-02", "2026-03-31").Return(nil)
	slots.On("BulkInsert", mock.Anything, mock.MatchedBy(func(s []domain.AvailabilitySlot) bool {
		// один открытый день в неделе (понедельник 09:00-12:00, шаг 60) дает
		// 3 слота в день; понедельников в окне 30 дней ровно 5
		return len(s) == 15 && s[0].Date == "2026-03-02" && s[0].Time.String() == "09:00"
	})).Return(nil)

	svc := newTestService(sched, settings, slots)

	req := &models.UpdateWorkingHoursRequest{
		Days: []models.DayWorkingHours{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
			{DayOfWeek: 0, IsAvailable: false},
		},
	}

	resp, err := svc.UpdateWorkingHours(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Days, 2)
	sched.AssertExpectations(t)
	slots.AssertExpectations(t)
}

func TestUpdateWorkingHours_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		days []models.DayWorkingHours
	}{
		{
			name: "empty schedule",
			days: nil,
		},
		{
			name: "day out of range",
			days: []models.DayWorkingHours{{DayOfWeek: 7, StartTime: "09:00", EndTime: "18:00", IsAvailable: true}},
		},
		{
			name: "duplicate day",
			days: []models.DayWorkingHours{
				{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", IsAvailable: true},
				{DayOfWeek: 1, StartTime: "10:00", EndTime: "19:00", IsAvailable: true},
			},
		},
		{
			name: "start after end",
			days: []models.DayWorkingHours{{DayOfWeek: 1, StartTime: "18:00", EndTime: "09:00", IsAvailable: true}},
		},
		{
			name: "malformed time",
			days: []models.DayWorkingHours{{DayOfWeek: 1, StartTime: "9am", EndTime: "18:00", IsAvailable: true}},
		},
		{
			name: "break start after end",
			days: []models.DayWorkingHours{{
				DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", IsAvailable: true,
				Breaks: []models.BreakData{{Start: "14:00", End: "13:00"}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := &mockScheduleRepo{}
			svc := newTestService(sched, &mockSettingsRepo{}, &mockSlotRepo{})

			_, err := svc.UpdateWorkingHours(context.Background(), &models.UpdateWorkingHoursRequest{Days: tt.days})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidWorkingHours)
			sched.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateWorkingHours_ClosedDaySkipsTimeValidation(t *testing.T) {
	sched := &mockScheduleRepo{}
	settings := &mockSettingsRepo{}
	slots := &mockSlotRepo{}

	settings.On("GetSlotInterval", mock.Anything, domain.SlotIntervalSettingKey).Return(30, nil)
	sched.On("ReplaceAll", mock.Anything, mock.Anything).Return(nil)
	slots.On("DeleteRange", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(sched, settings, slots)

	// закрытый день с пустыми временами валиден, слоты не генерируются
	req := &models.UpdateWorkingHoursRequest{
		Days: []models.DayWorkingHours{{DayOfWeek: 0, IsAvailable: false}},
	}

	_, err := svc.UpdateWorkingHours(context.Background(), req)
	require.NoError(t, err)
	slots.AssertNotCalled(t, "BulkInsert", mock.Anything, mock.Anything)
}

func TestGetSlotInterval_DefaultWhenMissing(t *testing.T) {
	settings := &mockSettingsRepo{}
	settings.On("GetSlotInterval", mock.Anything, domain.SlotIntervalSettingKey).
		Return(0, settingsRepo.ErrSettingNotFound)

	svc := newTestService(&mockScheduleRepo{}, settings, &mockSlotRepo{})

	resp, err := svc.GetSlotInterval(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotIntervalMinutes, resp.IntervalMinutes)
}

func TestGetSlotInterval_ReturnsStored(t *testing.T) {
	settings := &mockSettingsRepo{}
	settings.On("GetSlotInterval", mock.Anything, domain.SlotIntervalSettingKey).Return(45, nil)

	svc := newTestService(&mockScheduleRepo{}, settings, &mockSlotRepo{})

	resp, err := svc.GetSlotInterval(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 45, resp.IntervalMinutes)
}

func TestUpdateSlotInterval_Success(t *testing.T) {
	settings := &mockSettingsRepo{}
	settings.On("SetSlotInterval", mock.Anything, domain.SlotIntervalSettingKey, 60).Return(nil)

	svc := newTestService(&mockScheduleRepo{}, settings, &mockSlotRepo{})

	resp, err := svc.UpdateSlotInterval(context.Background(), &models.UpdateSlotIntervalRequest{IntervalMinutes: 60})
	require.NoError(t, err)
	assert.Equal(t, 60, resp.IntervalMinutes)
	settings.AssertExpectations(t)
}

func TestUpdateSlotInterval_OutOfRange(t *testing.T) {
	for _, interval := range []int{0, -30, 4, 481} {
		settings := &mockSettingsRepo{}
		svc := newTestService(&mockScheduleRepo{}, settings, &mockSlotRepo{})

		_, err := svc.UpdateSlotInterval(context.Background(), &models.UpdateSlotIntervalRequest{IntervalMinutes: interval})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInterval)
		settings.AssertNotCalled(t, "SetSlotInterval", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestUpdateWorkingHours_StorageErrorWrapped(t *testing.T) {
	sched := &mockScheduleRepo{}
	settings := &mockSettingsRepo{}

	settings.On("GetSlotInterval", mock.Anything, domain.SlotIntervalSettingKey).Return(30, nil)
	sched.On("ReplaceAll", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	svc := newTestService(sched, settings, &mockSlotRepo{})

	req := &models.UpdateWorkingHoursRequest{
		Days: []models.DayWorkingHours{{DayOfWeek: 0, IsAvailable: false}},
	}

	_, err := svc.UpdateWorkingHours(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}
