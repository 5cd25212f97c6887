package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotNotAvailable возвращается, когда слот уже забронирован и не может быть захвачен
	ErrSlotNotAvailable = errors.New("slot.repository: slot not available")

	// ErrSlotAlreadyBooked возвращается при попытке удалить забронированный слот
	ErrSlotAlreadyBooked = errors.New("slot.repository: slot already booked")

	// ErrSlotNotBooked возвращается при попытке освободить свободный слот
	ErrSlotNotBooked = errors.New("slot.repository: slot is not booked")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
