package get_cart

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

// Handle GET /api/v1/cart
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.UserIDFromRequest(r)
	if err != nil {
		h.logger.Warn("GET /cart - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	result := h.service.GetCart(r.Context(), userID)

	h.logger.Info("GET /cart - Cart retrieved: user_id=%d, items_count=%d", userID, len(result.Items))
	handlers.RespondJSON(w, http.StatusOK, result)
}
