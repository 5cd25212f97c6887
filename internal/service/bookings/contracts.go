package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainerService/internal/domain"
	"github.com/m04kA/SMC-TrainerService/internal/integrations/notifyservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
	GetByTrainerWithFilter(ctx context.Context, filter domain.TrainerBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string, by domain.CancelledBy) error
	SetReview(ctx context.Context, id int64, rating int, comment string) error
	CreateAdvice(ctx context.Context, advice *domain.Advice) (*domain.Advice, error)
	ListAdvice(ctx context.Context, bookingID int64) ([]*domain.Advice, error)
}

// SlotRepository интерфейс репозитория слотов
// Используется политикой release_slot_on_cancel
type SlotRepository interface {
	Release(ctx context.Context, id int64) error
}

// NotifyClient интерфейс клиента уведомлений
type NotifyClient interface {
	SendBestEffort(ctx context.Context, event notifyservice.BookingEvent)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
