package checkout_cart

import "errors"

var (
	// ErrEmptyCart возвращается при попытке оформить пустую корзину
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

// Коды причин неудачи для отдельных позиций корзины
// Оформление толерантно к частичным сбоям: неудачные позиции
// остаются в корзине с указанием причины
const (
	ReasonSlotUnavailable        = "slot_unavailable"
	ReasonSlotInPast             = "slot_in_past"
	ReasonTrainerRateUnavailable = "trainer_rate_unavailable"
	ReasonInternalError          = "internal_error"
)
