package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrCancellationWindowExpired возвращается, когда до начала сессии осталось
	// меньше окна отмены
	ErrCancellationWindowExpired = errors.New("cancellation window expired")

	// ErrMissingReason возвращается при отмене без указания причины
	ErrMissingReason = errors.New("cancellation reason is required")

	// ErrSessionNotYetOver возвращается при попытке завершить сессию до её окончания
	ErrSessionNotYetOver = errors.New("session is not over yet")

	// ErrTerminalState возвращается при попытке изменить завершенное или отмененное бронирование
	ErrTerminalState = errors.New("booking is in a terminal state")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidState возвращается, когда операция недоступна в текущем статусе
	// (рекомендации и отзывы - только для завершенных бронирований)
	ErrInvalidState = errors.New("operation not allowed in current booking state")

	// ErrReviewAlreadyExists возвращается при повторной попытке оставить отзыв
	ErrReviewAlreadyExists = errors.New("review already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
