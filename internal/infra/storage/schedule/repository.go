package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	"github.com/m04kA/BRB-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/BRB-AppointmentService/pkg/psqlbuilder"
)

var workingHoursColumns = []string{
	"id",
	"day_of_week",
	"start_time",
	"end_time",
	"is_available",
	"breaks",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с рабочими часами
// Перерывы хранятся в jsonb-колонке breaks
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll возвращает рабочие часы всех дней недели, упорядоченные по дню
func (r *Repository) GetAll(ctx context.Context) ([]domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From("working_hours").
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]domain.WorkingHours, 0, 7)
	for rows.Next() {
		wh, err := scanWorkingHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - %v", ErrScanRow, err)
		}
		hours = append(hours, *wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows iteration: %v", ErrExecQuery, err)
	}

	return hours, nil
}

// GetByDay возвращает рабочие часы одного дня недели (0 = воскресенье)
func (r *Repository) GetByDay(ctx context.Context, dayOfWeek int) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From("working_hours").
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - build select query: %v", ErrBuildQuery, err)
	}

	wh, err := scanWorkingHours(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkingHoursNotFound
		}
		return nil, fmt.Errorf("%w: GetByDay - %v", ErrScanRow, err)
	}

	return wh, nil
}

// ReplaceAll целиком заменяет расписание: удаляет все строки и вставляет
// новые. Вызывающий обязан обернуть вызов в сериализуемую транзакцию,
// чтобы наблюдатель не увидел мгновение с пустым расписанием
func (r *Repository) ReplaceAll(ctx context.Context, hours []domain.WorkingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("working_hours").ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAll - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceAll - execute delete: %v", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return nil
	}

	builder := psqlbuilder.Insert("working_hours").
		Columns("day_of_week", "start_time", "end_time", "is_available", "breaks")

	for _, wh := range hours {
		breaks, err := encodeBreaks(wh.Breaks)
		if err != nil {
			return err
		}
		builder = builder.Values(wh.DayOfWeek, wh.StartTime, wh.EndTime, wh.IsAvailable, breaks)
	}

	insertQuery, insertArgs, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAll - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceAll - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func encodeBreaks(breaks []domain.Break) ([]byte, error) {
	if breaks == nil {
		breaks = []domain.Break{}
	}
	data, err := json.Marshal(breaks)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeBreaks, err)
	}
	return data, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkingHours(row rowScanner) (*domain.WorkingHours, error) {
	var (
		wh        domain.WorkingHours
		breaksRaw []byte
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&wh.ID,
		&wh.DayOfWeek,
		&wh.StartTime,
		&wh.EndTime,
		&wh.IsAvailable,
		&breaksRaw,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(breaksRaw) > 0 {
		if err := json.Unmarshal(breaksRaw, &wh.Breaks); err != nil {
			return nil, fmt.Errorf("failed to decode breaks: %w", err)
		}
	}

	wh.CreatedAt = createdAt.Time
	wh.UpdatedAt = updatedAt.Time

	return &wh, nil
}
