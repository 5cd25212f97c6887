package add_cart_item

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainerService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerService/internal/service/cart"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotNotFound       = "слот не найден"
	msgTrainerNotFound    = "тренер не найден"
	msgSlotAlreadyBooked  = "слот уже забронирован"
	msgSlotInPast         = "слот уже начался"
	msgDuplicateItem      = "слот уже добавлен в корзину"
)

type Handler struct {
	service CartService
	logger  Logger
}

func NewHandler(service CartService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/cart/items
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем ID пользователя из заголовка
	userID, err := handlers.UserIDFromRequest(r)
	if err != nil {
		h.logger.Warn("POST /cart/items - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Декодируем body
	var req AddCartItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cart/items - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Добавляем позицию в корзину
	result, err := h.service.AddItem(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrSlotNotFound):
			h.logger.Warn("POST /cart/items - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, cart.ErrTrainerNotFound):
			h.logger.Warn("POST /cart/items - Trainer not found: trainer_id=%d", req.TrainerID)
			handlers.RespondNotFound(w, msgTrainerNotFound)

		case errors.Is(err, cart.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /cart/items - Slot already booked: slot_id=%d", req.SlotID)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, cart.ErrSlotInPast):
			h.logger.Warn("POST /cart/items - Slot in the past: slot_id=%d", req.SlotID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, cart.ErrDuplicateItem):
			h.logger.Warn("POST /cart/items - Duplicate item: user_id=%d, slot_id=%d", userID, req.SlotID)
			handlers.RespondConflict(w, msgDuplicateItem)

		case errors.Is(err, cart.ErrInvalidInput):
			h.logger.Warn("POST /cart/items - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /cart/items - Failed to add item: user_id=%d, slot_id=%d, error=%v",
				userID, req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cart/items - Item added successfully: user_id=%d, item_id=%d, slot_id=%d",
		userID, result.ID, req.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
