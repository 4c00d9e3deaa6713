package create_appointment

import "errors"

var (
	// ErrSlotNotAvailable возвращается, когда слот уже забронирован
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда время не попадает в сетку слотов
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrDayClosed возвращается, когда барбершоп закрыт в указанный день
	ErrDayClosed = errors.New("create_appointment: shop is closed on this day")

	// ErrInvalidDate возвращается при некорректной или прошедшей дате
	ErrInvalidDate = errors.New("create_appointment: invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
