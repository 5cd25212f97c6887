package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainerService/internal/domain"
	"github.com/m04kA/SMC-TrainerService/internal/infra/cartstore"
	slotRepo "github.com/m04kA/SMC-TrainerService/internal/infra/storage/slot"
	trainerClient "github.com/m04kA/SMC-TrainerService/internal/integrations/trainerservice"
	"github.com/m04kA/SMC-TrainerService/internal/service/cart/models"
)

// Service сервис корзины бронирований
// Корзина - подготовительный этап: слоты в ней не резервируются,
// их доступность перепроверяется при оформлении
type Service struct {
	slotRepo      SlotRepository
	cartStore     CartStore
	trainerClient TrainerServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса корзины
func NewService(
	slotRepo SlotRepository,
	cartStore CartStore,
	trainerClient TrainerServiceClient,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:      slotRepo,
		cartStore:     cartStore,
		trainerClient: trainerClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// AddItem добавляет слот тренера в корзину пользователя
// Повторное добавление того же слота возвращает ErrDuplicateItem
// Цена позиции берется из текущей ставки тренера и служит только для отображения
func (s *Service) AddItem(ctx context.Context, req *models.AddItemRequest) (*models.CartItemResponse, error) {
	s.logger.Info("AddItem: user=%d adding slot=%d of trainer=%d to cart", req.UserID, req.SlotID, req.TrainerID)

	if req.UserID <= 0 || req.TrainerID <= 0 || req.SlotID <= 0 {
		return nil, fmt.Errorf("%w: userID, trainerID and slotID must be positive", ErrInvalidInput)
	}

	slot, err := s.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("AddItem: slot id=%d not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("AddItem: repository error for slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: AddItem - repository error: %v", ErrInternal, err)
	}

	if slot.TrainerID != req.TrainerID {
		s.logger.Warn("AddItem: slot id=%d belongs to trainer=%d, not trainer=%d", req.SlotID, slot.TrainerID, req.TrainerID)
		return nil, fmt.Errorf("%w: slot does not belong to the trainer", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	if slot.IsPast(now) {
		s.logger.Warn("AddItem: slot id=%d already started", req.SlotID)
		return nil, ErrSlotInPast
	}

	if slot.Booked {
		s.logger.Warn("AddItem: slot id=%d already booked", req.SlotID)
		return nil, ErrSlotAlreadyBooked
	}

	// Цена для отображения; при недоступности TrainerService корзина
	// работает дальше, итоговая цена всё равно фиксируется при оформлении
	var price int64
	trainer, err := s.trainerClient.GetTrainerWithGracefulDegradation(ctx, req.TrainerID)
	switch {
	case err == nil:
		price = trainer.HourlyRate
	case errors.Is(err, trainerClient.ErrTrainerNotFound):
		s.logger.Warn("AddItem: trainer id=%d not found", req.TrainerID)
		return nil, ErrTrainerNotFound
	case errors.Is(err, trainerClient.ErrServiceDegraded):
		s.logger.Warn("AddItem: trainer rate unavailable for trainer=%d, cart price set to 0", req.TrainerID)
	default:
		s.logger.Error("AddItem: failed to get trainer id=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: AddItem - failed to get trainer: %v", ErrInternal, err)
	}

	item, err := s.cartStore.Add(req.UserID, &domain.CartItem{
		TrainerID: req.TrainerID,
		SlotID:    slot.ID,
		SlotStart: slot.StartTime,
		SlotEnd:   slot.EndTime,
		Price:     price,
		AddedAt:   now,
	})
	if err != nil {
		if errors.Is(err, cartstore.ErrDuplicateItem) {
			s.logger.Warn("AddItem: slot id=%d already in cart of user=%d", req.SlotID, req.UserID)
			return nil, ErrDuplicateItem
		}
		s.logger.Error("AddItem: cart store error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: AddItem - cart store error: %v", ErrInternal, err)
	}

	s.logger.Info("AddItem: successfully added item id=%d to cart of user=%d", item.ID, req.UserID)
	return models.FromDomainCartItem(item), nil
}

// RemoveItem удаляет позицию из корзины
// Отсутствующая позиция не является ошибкой
func (s *Service) RemoveItem(ctx context.Context, userID, itemID int64) {
	s.logger.Info("RemoveItem: user=%d removing item=%d from cart", userID, itemID)
	s.cartStore.Remove(userID, itemID)
}

// GetCart возвращает корзину пользователя с суммарной ценой
func (s *Service) GetCart(ctx context.Context, userID int64) *models.CartResponse {
	items := s.cartStore.List(userID)
	s.logger.Info("GetCart: user=%d has %d items in cart", userID, len(items))
	return models.FromDomainCart(items)
}

// ClearCart полностью очищает корзину пользователя (явный отказ от выбора)
func (s *Service) ClearCart(ctx context.Context, userID int64) {
	s.logger.Info("ClearCart: clearing cart of user=%d", userID)
	s.cartStore.Clear(userID)
}
