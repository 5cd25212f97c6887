package checkout_cart

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainerService/internal/api/handlers"
	checkoutCart "github.com/m04kA/SMC-TrainerService/internal/usecase/checkout_cart"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptyCart          = "корзина пуста"
)

type Handler struct {
	useCase CheckoutCartUseCase
	logger  Logger
}

func NewHandler(useCase CheckoutCartUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/cart/checkout
// Оформление может завершиться частично: успешные позиции становятся
// бронированиями, неудачные возвращаются с причинами и остаются в корзине
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.UserIDFromRequest(r)
	if err != nil {
		h.logger.Warn("POST /cart/checkout - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Декодируем body
	var req CheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cart/checkout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Оформляем корзину
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, checkoutCart.ErrEmptyCart):
			h.logger.Warn("POST /cart/checkout - Empty cart: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgEmptyCart)

		case errors.Is(err, checkoutCart.ErrInvalidInput):
			h.logger.Warn("POST /cart/checkout - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /cart/checkout - Failed to checkout: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cart/checkout - Checkout finished: user_id=%d, succeeded=%d, failed=%d",
		userID, len(result.Succeeded), len(result.Failed))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
