package remove_cart_item

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainerService/internal/api/handlers"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidItemID = "некорректный ID позиции корзины"
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

// Handle DELETE /api/v1/cart/items/{itemId}
// Удаление отсутствующей позиции не является ошибкой
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.UserIDFromRequest(r)
	if err != nil {
		h.logger.Warn("DELETE /cart/items/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	vars := mux.Vars(r)
	itemID, err := strconv.ParseInt(vars["itemId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /cart/items/{id} - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	h.service.RemoveItem(r.Context(), userID, itemID)

	h.logger.Info("DELETE /cart/items/{id} - Item removed: user_id=%d, item_id=%d", userID, itemID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
