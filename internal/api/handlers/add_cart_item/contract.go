package add_cart_item

import (
	"context"

	"github.com/m04kA/SMC-TrainerService/internal/service/cart/models"
)

type CartService interface {
	AddItem(ctx context.Context, req *models.AddItemRequest) (*models.CartItemResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
