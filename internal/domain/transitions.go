package domain

import "errors"

var (
	// ErrTerminalState возвращается при попытке перевести бронирование из терминального статуса
	ErrTerminalState = errors.New("domain: booking is in a terminal state")

	// ErrInvalidTransition возвращается при недопустимом переходе между статусами
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrUnknownStatus возвращается для статуса вне закрытого перечисления
	ErrUnknownStatus = errors.New("domain: unknown booking status")
)

// transitions закрытая таблица допустимых переходов статусов
// Единственное место в системе, определяющее машину состояний бронирования
var transitions = map[BookingStatus]map[BookingStatus]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusCompleted: true,
		StatusCancelled: true,
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

// ParseBookingStatus валидирует строковый статус против закрытого перечисления
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if _, ok := transitions[status]; !ok {
		return "", ErrUnknownStatus
	}
	return status, nil
}

// ValidateTransition проверяет допустимость перехода from -> to
// Возвращает ErrTerminalState для переходов из completed/cancelled,
// ErrInvalidTransition для остальных недопустимых переходов
func ValidateTransition(from, to BookingStatus) error {
	allowed, ok := transitions[from]
	if !ok {
		return ErrUnknownStatus
	}
	if _, ok := transitions[to]; !ok {
		return ErrUnknownStatus
	}

	if len(allowed) == 0 {
		return ErrTerminalState
	}

	if !allowed[to] {
		return ErrInvalidTransition
	}

	return nil
}
