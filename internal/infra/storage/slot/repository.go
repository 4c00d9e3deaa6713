package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BRB-AppointmentService/internal/domain"
	"github.com/m04kA/BRB-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/BRB-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/BRB-AppointmentService/pkg/types"
)

// Repository репозиторий для работы с таблицей занятости слотов
//
// Таблица available_slots - единственный источник истины о том, можно ли
// занять пару (дата, время). Уникальный индекс по (date, time) вместе с
// условным UPDATE в Claim закрывает гонку двух одновременных бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate возвращает сохраненные флаги занятости на дату: время -> занят.
// Отсутствие времени в мапе означает, что слот свободен
func (r *Repository) GetByDate(ctx context.Context, date string) (map[types.TimeString]bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("time", "is_booked").
		From("available_slots").
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make(map[types.TimeString]bool)
	for rows.Next() {
		var (
			t        types.TimeString
			isBooked bool
		)
		if err := rows.Scan(&t, &isBooked); err != nil {
			return nil, fmt.Errorf("%w: GetByDate - %v", ErrScanRow, err)
		}
		slots[t] = isBooked
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - rows iteration: %v", ErrExecQuery, err)
	}

	return slots, nil
}

// UpsertGenerated вставляет сгенерированные кандидаты как свободные слоты.
// Уже существующие строки не трогаются - занятый слот никогда не
// перезаписывается сгенерированным значением по умолчанию
func (r *Repository) UpsertGenerated(ctx context.Context, date string, times []types.TimeString) error {
	if len(times) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("available_slots").
		Columns("date", "time", "is_booked")
	for _, t := range times {
		builder = builder.Values(date, t, false)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (date, time) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertGenerated - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertGenerated - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Claim атомарно помечает слот занятым
//
// Один запрос: вставка занятого слота, а при конфликте по (date, time) -
// условное обновление, которое срабатывает только если слот свободен.
// Если RETURNING не вернул строку, слот уже занят - возвращается ErrSlotTaken.
// Из двух конкурентных Claim на одну пару выиграет ровно один
func (r *Repository) Claim(ctx context.Context, date string, t types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("available_slots").
		Columns("date", "time", "is_booked").
		Values(date, t, true).
		Suffix("ON CONFLICT (date, time) DO UPDATE SET is_booked = TRUE WHERE available_slots.is_booked = FALSE RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Claim - build query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: Claim - execute query: %v", ErrExecQuery, err)
	}

	return nil
}

// Release помечает слот свободным
// Идемпотентна: отсутствующий или уже свободный слот - не ошибка
func (r *Repository) Release(ctx context.Context, date string, t types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("available_slots").
		Set("is_booked", false).
		Where(squirrel.Eq{"date": date, "time": t}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteRange удаляет все слоты в диапазоне дат [from, to] включительно
// Используется только регенерацией внутри сериализуемой транзакции
func (r *Repository) DeleteRange(ctx context.Context, from, to string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("available_slots").
		Where(squirrel.And{
			squirrel.GtOrEq{"date": from},
			squirrel.LtOrEq{"date": to},
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteRange - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteRange - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// BulkInsert вставляет слоты пачкой (для регенерации)
func (r *Repository) BulkInsert(ctx context.Context, slots []domain.AvailabilitySlot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("available_slots").
		Columns("date", "time", "is_booked")
	for _, s := range slots {
		builder = builder.Values(s.Date, s.Time, s.IsBooked)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (date, time) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: BulkInsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: BulkInsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
