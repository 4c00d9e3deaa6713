package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BRB-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/BRB-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий настроек сервиса (таблица settings, ключ-значение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSlotInterval читает интервал слотов в минутах по ключу настройки
func (r *Repository) GetSlotInterval(ctx context.Context, key string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_interval").
		From("settings").
		Where(squirrel.Eq{"key": key}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: GetSlotInterval - build select query: %v", ErrBuildQuery, err)
	}

	var interval int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&interval); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrSettingNotFound
		}
		return 0, fmt.Errorf("%w: GetSlotInterval - %v", ErrScanRow, err)
	}

	return interval, nil
}

// SetSlotInterval сохраняет интервал слотов (upsert по ключу настройки)
func (r *Repository) SetSlotInterval(ctx context.Context, key string, interval int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("settings").
		Columns("key", "slot_interval").
		Values(key, interval).
		Suffix("ON CONFLICT (key) DO UPDATE SET slot_interval = EXCLUDED.slot_interval, updated_at = now()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetSlotInterval - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetSlotInterval - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
