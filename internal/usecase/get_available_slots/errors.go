package get_available_slots

import "errors"

var (
	// ErrTrainerNotFound возвращается, когда тренер не найден
	ErrTrainerNotFound = errors.New("trainer not found")

	// ErrTrainerInactive возвращается, когда тренер не принимает записи
	ErrTrainerInactive = errors.New("trainer is not accepting bookings")

	// ErrInvalidDate возвращается, когда запрошенная дата уже прошла
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
