package get_cart

import (
	"context"

	"github.com/m04kA/SMC-TrainerService/internal/service/cart/models"
)

type CartService interface {
	GetCart(ctx context.Context, userID int64) *models.CartResponse
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
