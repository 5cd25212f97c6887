package cart

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainerService/internal/domain"
	"github.com/m04kA/SMC-TrainerService/internal/integrations/trainerservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

// CartStore интерфейс хранилища корзин
type CartStore interface {
	Add(userID int64, item *domain.CartItem) (*domain.CartItem, error)
	Remove(userID, itemID int64)
	List(userID int64) []*domain.CartItem
	Clear(userID int64)
}

// TrainerServiceClient интерфейс клиента TrainerService
type TrainerServiceClient interface {
	GetTrainerWithGracefulDegradation(ctx context.Context, trainerID int64) (*trainerservice.Trainer, error)
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
