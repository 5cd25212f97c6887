package clear_cart

import (
	"net/http"

	"github.com/m04kA/SMC-TrainerService/internal/api/handlers"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
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

// Handle DELETE /api/v1/cart
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.UserIDFromRequest(r)
	if err != nil {
		h.logger.Warn("DELETE /cart - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	h.service.ClearCart(r.Context(), userID)

	h.logger.Info("DELETE /cart - Cart cleared: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
