package cancel_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("cancel_appointment: appointment not found")

	// ErrForbidden возвращается при попытке отменить чужую запись
	ErrForbidden = errors.New("cancel_appointment: appointment belongs to another client")

	// ErrCannotCancel возвращается, когда запись уже в финальном статусе
	ErrCannotCancel = errors.New("cancel_appointment: appointment cannot be cancelled")

	// ErrCancellationWindowClosed возвращается, когда до начала записи
	// осталось меньше обязательного уведомления
	ErrCancellationWindowClosed = errors.New("cancel_appointment: cancellation window is closed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointment: internal error")
)
