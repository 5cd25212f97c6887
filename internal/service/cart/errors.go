package cart

import "errors"

var (
	// ErrDuplicateItem возвращается при повторном добавлении слота в корзину
	// Не фатальна: корзина не меняется, действие игнорируется с предупреждением
	ErrDuplicateItem = errors.New("item already in cart")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotAlreadyBooked возвращается при попытке добавить занятый слот
	ErrSlotAlreadyBooked = errors.New("slot already booked")

	// ErrSlotInPast возвращается при попытке добавить слот, который уже начался
	ErrSlotInPast = errors.New("slot is in the past")

	// ErrTrainerNotFound возвращается, когда тренер не найден
	ErrTrainerNotFound = errors.New("trainer not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
