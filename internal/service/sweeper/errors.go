package sweeper

import "errors"

var (
	// ErrInternal - внутренняя ошибка сервиса
	ErrInternal = errors.New("internal service error")
)
