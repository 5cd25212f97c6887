package add_advice

import (
	"context"

	"github.com/m04kA/SMC-TrainerService/internal/service/bookings/models"
)

type BookingService interface {
	AddAdvice(ctx context.Context, bookingID int64, req *models.AddAdviceRequest) (*models.AdviceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
