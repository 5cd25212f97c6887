package clear_cart

import "context"

type CartService interface {
	ClearCart(ctx context.Context, userID int64)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
