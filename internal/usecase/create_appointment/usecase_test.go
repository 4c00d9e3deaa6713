package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	"github.com/m04kA/BRB-AppointmentService/internal/events"
	slotRepo "github.com/m04kA/BRB-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/BRB-AppointmentService/pkg/ptr"
	"github.com/m04kA/BRB-AppointmentService/pkg/types"
)

type mockApptRepo struct {
	mock.Mock
}

func (m *mockApptRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	args := m.Called(ctx, appt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

type mockSlotRepo struct {
	mock.Mock
}

func (m *mockSlotRepo) Claim(ctx context.Context, date string, t types.TimeString) error {
	return m.Called(ctx, date, t).Error(0)
}

func (m *mockSlotRepo) Release(ctx context.Context, date string, t types.TimeString) error {
	return m.Called(ctx, date, t).Error(0)
}

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

type capturingPublisher struct {
	published []events.AppointmentEvent
}

func (p *capturingPublisher) Publish(event events.AppointmentEvent) {
	p.published = append(p.published, event)
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

var (
	// понедельник
	testDate = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
)

type fixture struct {
	apptRepo  *mockApptRepo
	slots     *mockSlotRepo
	sched     *mockScheduleRepo
	settings  *mockSettingsRepo
	publisher *capturingPublisher
	uc        *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		apptRepo:  &mockApptRepo{},
		slots:     &mockSlotRepo{},
		sched:     &mockScheduleRepo{},
		settings:  &mockSettingsRepo{},
		publisher: &capturingPublisher{},
	}
	f.uc = NewUseCase(f.apptRepo, f.slots, f.sched, f.settings, f.publisher, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: testNow}
	return f
}

func (f *fixture) expectOpenMonday() {
	f.settings.On("GetSlotInterval", mock.Anything, domain.SlotIntervalSettingKey).Return(30, nil)
	f.sched.On("GetByDay", mock.Anything, 1).Return(&domain.WorkingHours{
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "18:00",
		IsAvailable: true,
	}, nil)
}

func validRequest() *Request {
	return &Request{
		ClientID:    "c1",
		ClientName:  "Иван",
		ClientPhone: "+79990001122",
		Date:        testDate,
		Time:        "10:00",
		Service:     "haircut",
		Price:       1500,
		Notes:       ptr.Ptr("без машинки"),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()
	f.expectOpenMonday()
	f.slots.On("Claim", mock.Anything, "2026-03-09", types.TimeString("10:00")).Return(nil)
	f.apptRepo.On("Create", mock.Anything, mock.MatchedBy(func(appt *domain.Appointment) bool {
		return appt.ID != "" &&
			appt.ClientID == "c1" &&
			appt.Status == domain.StatusConfirmed &&
			appt.Time == types.TimeString("10:00")
	})).Return(&domain.Appointment{
		ID:       "new-id",
		ClientID: "c1",
		Date:     testDate,
		Time:     "10:00",
		Status:   domain.StatusConfirmed,
		Service:  "haircut",
		Price:    1500,
	}, nil)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "new-id", resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, events.TypeAppointmentCreated, f.publisher.published[0].Type)
	assert.Equal(t, "new-id", f.publisher.published[0].Appointment.ID)
	f.slots.AssertExpectations(t)
}

func TestExecute_SlotTaken(t *testing.T) {
	f := newFixture()
	f.expectOpenMonday()
	f.slots.On("Claim", mock.Anything, "2026-03-09", types.TimeString("10:00")).
		Return(slotRepo.ErrSlotTaken)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	f.apptRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.published)
}

func TestExecute_PersistFailureReleasesSlot(t *testing.T) {
	f := newFixture()
	f.expectOpenMonday()
	f.slots.On("Claim", mock.Anything, "2026-03-09", types.TimeString("10:00")).Return(nil)
	f.apptRepo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("constraint violation"))
	f.slots.On("Release", mock.Anything, "2026-03-09", types.TimeString("10:00")).Return(nil)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	f.slots.AssertCalled(t, "Release", mock.Anything, "2026-03-09", types.TimeString("10:00"))
	assert.Empty(t, f.publisher.published)
}

func TestExecute_OffGridTimeRejected(t *testing.T) {
	f := newFixture()
	f.expectOpenMonday()

	req := validRequest()
	req.Time = "10:15"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	f.slots.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ClosedDayRejected(t *testing.T) {
	f := newFixture()
	f.settings.On("GetSlotInterval", mock.Anything, domain.SlotIntervalSettingKey).Return(30, nil)
	f.sched.On("GetByDay", mock.Anything, 0).Return(&domain.WorkingHours{
		DayOfWeek:   0,
		IsAvailable: false,
	}, nil)

	req := validRequest()
	req.Date = time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC) // воскресенье

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDayClosed)
}

func TestExecute_PastDateRejected(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Date = time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_PassedTimeTodayRejected(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Date = testNow // сегодня, 12:00
	req.Time = "11:00"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_MissingFieldsRejected(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty clientID", func(r *Request) { r.ClientID = "" }},
		{"empty clientName", func(r *Request) { r.ClientName = "" }},
		{"empty service", func(r *Request) { r.Service = "" }},
		{"negative price", func(r *Request) { r.Price = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// последовательные захваты одного слота: первый выигрывает, второй
// получает отказ
func TestExecute_SequentialClaimsSecondFails(t *testing.T) {
	f := newFixture()
	f.settings.On("GetSlotInterval", mock.Anything, domain.SlotIntervalSettingKey).Return(30, nil)
	f.sched.On("GetByDay", mock.Anything, 1).Return(&domain.WorkingHours{
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "18:00",
		IsAvailable: true,
	}, nil)

	f.slots.On("Claim", mock.Anything, "2026-03-09", types.TimeString("09:00")).Return(nil).Once()
	f.slots.On("Claim", mock.Anything, "2026-03-09", types.TimeString("09:00")).Return(slotRepo.ErrSlotTaken).Once()
	f.apptRepo.On("Create", mock.Anything, mock.Anything).Return(&domain.Appointment{
		ID:     "first",
		Status: domain.StatusConfirmed,
		Date:   testDate,
		Time:   "09:00",
	}, nil).Once()

	req := validRequest()
	req.Time = "09:00"

	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "first", first.ID)

	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}
