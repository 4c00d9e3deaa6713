package schedule

import "errors"

var (
	// ErrInvalidWorkingHours - некорректное расписание рабочих часов
	ErrInvalidWorkingHours = errors.New("invalid working hours")

	// ErrInvalidInterval - недопустимая длительность слота
	ErrInvalidInterval = errors.New("invalid slot interval")

	// ErrInternal - внутренняя ошибка сервиса
	ErrInternal = errors.New("internal service error")
)
