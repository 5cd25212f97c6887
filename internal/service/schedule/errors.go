package schedule

import "errors"

var (
	// ErrInvalidRange возвращается, когда конец слота не позже начала
	// или длительность вне допустимых пределов
	ErrInvalidRange = errors.New("invalid slot time range")

	// ErrOverlappingSlot возвращается, когда новый слот пересекается
	// с существующим слотом тренера (занятым или свободным)
	ErrOverlappingSlot = errors.New("slot overlaps an existing slot")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotAlreadyBooked возвращается при попытке удалить забронированный слот
	ErrSlotAlreadyBooked = errors.New("slot already booked")

	// ErrSlotNotBooked возвращается при попытке освободить свободный слот
	ErrSlotNotBooked = errors.New("slot is not booked")

	// ErrTrainerNotFound возвращается, когда тренер не найден
	ErrTrainerNotFound = errors.New("trainer not found")

	// ErrAccessDenied возвращается, когда слот принадлежит другому тренеру
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
