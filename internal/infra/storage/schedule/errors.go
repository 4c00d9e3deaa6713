package schedule

import "errors"

var (
	// ErrWorkingHoursNotFound возвращается, когда расписание дня не найдено
	ErrWorkingHoursNotFound = errors.New("schedule.repository: working hours not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrEncodeBreaks возвращается при ошибке сериализации перерывов
	ErrEncodeBreaks = errors.New("schedule.repository: failed to encode breaks")
)
