package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	"github.com/m04kA/BRB-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/BRB-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/BRB-AppointmentService/pkg/types"
)

var appointmentColumns = []string{
	"id",
	"client_id",
	"client_name",
	"client_phone",
	"date",
	"time",
	"status",
	"service",
	"price",
	"notes",
	"created_at",
	"completed_at",
}

// Repository репозиторий для работы с записями клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"client_id",
			"client_name",
			"client_phone",
			"date",
			"time",
			"status",
			"service",
			"price",
			"notes",
		).
		Values(
			appt.ID,
			appt.ClientID,
			appt.ClientName,
			appt.ClientPhone,
			appt.Date,
			appt.Time,
			appt.Status,
			appt.Service,
			appt.Price,
			appt.Notes,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetByClientID получает историю записей клиента (новые сверху)
func (r *Repository) GetByClientID(ctx context.Context, clientID string) ([]*domain.Appointment, error) {
	return r.list(ctx, squirrel.Eq{"client_id": clientID}, "created_at DESC")
}

// GetByDate получает все записи на указанную дату, упорядоченные по времени
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	return r.list(ctx, squirrel.Eq{"date": date.Format(domain.DateFormat)}, "time ASC")
}

// GetConfirmedDue получает подтвержденные записи на дату, время начала
// которых не позже cutoff. Используется автозавершением
func (r *Repository) GetConfirmedDue(ctx context.Context, date time.Time, cutoff types.TimeString) ([]*domain.Appointment, error) {
	return r.list(ctx, squirrel.And{
		squirrel.Eq{"status": domain.StatusConfirmed},
		squirrel.Eq{"date": date.Format(domain.DateFormat)},
		squirrel.LtOrEq{"time": cutoff},
	}, "time ASC")
}

func (r *Repository) list(ctx context.Context, where squirrel.Sqlizer, orderBy string) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(where).
		OrderBy(orderBy).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: list - %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows iteration: %v", ErrExecQuery, err)
	}

	return appointments, nil
}

// UpdateStatus обновляет статус записи
// completedAt записывается только для статуса completed
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, completedAt *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("appointments").
		Set("status", status).
		Where(squirrel.Eq{"id": id})

	if status == domain.StatusCompleted && completedAt != nil {
		builder = builder.Set("completed_at", *completedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		appt        domain.Appointment
		createdAt   sql.NullTime
		completedAt sql.NullTime
	)

	err := row.Scan(
		&appt.ID,
		&appt.ClientID,
		&appt.ClientName,
		&appt.ClientPhone,
		&appt.Date,
		&appt.Time,
		&appt.Status,
		&appt.Service,
		&appt.Price,
		&appt.Notes,
		&createdAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	if completedAt.Valid {
		appt.CompletedAt = &completedAt.Time
	}

	return &appt, nil
}
