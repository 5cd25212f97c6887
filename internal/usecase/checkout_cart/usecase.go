package checkout_cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainerService/internal/domain"
	slotRepo "github.com/m04kA/SMC-TrainerService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TrainerService/internal/integrations/notifyservice"
)

// UseCase use case оформления корзины в бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	slotRepo      SlotRepository
	cartStore     CartStore
	trainerClient TrainerServiceClient
	notifyClient  NotifyClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	cartStore CartStore,
	trainerClient TrainerServiceClient,
	notifyClient NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		slotRepo:      slotRepo,
		cartStore:     cartStore,
		trainerClient: trainerClient,
		notifyClient:  notifyClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute оформляет корзину пользователя
// Каждая позиция обрабатывается в отдельной сериализуемой транзакции:
// захват слота и создание бронирования либо происходят вместе, либо
// не происходят вовсе. Неудача одной позиции не откатывает остальные
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckoutCart: user=%d, location=%d", req.UserID, req.LocationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckoutCart: validation failed: %v", err)
		return nil, err
	}

	// 2. Снимаем снимок корзины
	items := uc.cartStore.List(req.UserID)
	if len(items) == 0 {
		uc.logger.Warn("CheckoutCart: cart of user=%d is empty", req.UserID)
		return nil, ErrEmptyCart
	}

	// 3. Фиксируем актуальные ставки тренеров
	// Цена в корзине справочная; в бронирование попадает ставка
	// на момент оформления. Недоступная ставка валит только позиции
	// этого тренера
	rates := uc.resolveRates(ctx, items)

	now := uc.timeProvider.Now()
	response := &Response{
		Succeeded: []BookingResult{},
		Failed:    []FailedItem{},
	}
	succeededIDs := make([]int64, 0, len(items))
	created := make([]*domain.Booking, 0, len(items))

	// 4. Оформляем позиции по одной
	for _, item := range items {
		price, ok := rates[item.TrainerID]
		if !ok {
			uc.logger.Warn("CheckoutCart: rate unavailable for trainer=%d, item=%d skipped", item.TrainerID, item.ID)
			response.Failed = append(response.Failed, FailedItem{
				ItemID: item.ID,
				SlotID: item.SlotID,
				Reason: ReasonTrainerRateUnavailable,
			})
			continue
		}

		booking, reason := uc.checkoutItem(ctx, req, item, price, now)
		if reason != "" {
			response.Failed = append(response.Failed, FailedItem{
				ItemID: item.ID,
				SlotID: item.SlotID,
				Reason: reason,
			})
			continue
		}

		succeededIDs = append(succeededIDs, item.ID)
		created = append(created, booking)
		response.Succeeded = append(response.Succeeded, BookingResult{
			BookingID: booking.ID,
			ItemID:    item.ID,
			SlotID:    booking.SlotID,
			TrainerID: booking.TrainerID,
			StartTime: booking.StartTime,
			EndTime:   booking.EndTime,
			Price:     booking.Price,
			Status:    string(booking.Status),
		})
	}

	// 5. Успешные позиции покидают корзину, неудачные остаются
	if len(succeededIDs) > 0 {
		uc.cartStore.RemoveMany(req.UserID, succeededIDs)
	}

	// 6. Уведомления по созданным бронированиям (best-effort)
	for _, booking := range created {
		uc.notifyClient.SendBestEffort(ctx, notifyservice.BookingEvent{
			Type:      notifyservice.EventBookingCreated,
			BookingID: booking.ID,
			UserID:    booking.UserID,
			TrainerID: booking.TrainerID,
			StartTime: booking.StartTime,
			EndTime:   booking.EndTime,
		})
	}

	uc.logger.Info("CheckoutCart: user=%d, %d succeeded, %d failed",
		req.UserID, len(response.Succeeded), len(response.Failed))

	return response, nil
}

// checkoutItem пытается превратить одну позицию корзины в бронирование
// Возвращает созданное бронирование либо код причины отказа
func (uc *UseCase) checkoutItem(ctx context.Context, req *Request, item *domain.CartItem, price int64, now time.Time) (*domain.Booking, string) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Перепроверяем слот внутри транзакции: корзина не резервирует
		slot, err := uc.slotRepo.GetByID(txCtx, item.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return slotRepo.ErrSlotNotFound
			}
			return fmt.Errorf("get slot: %w", err)
		}

		if slot.IsPast(now) {
			return errSlotInPast
		}

		// Атомарный захват: ровно один из конкурентных покупателей
		// получает слот
		if err := uc.slotRepo.Claim(txCtx, slot.ID); err != nil {
			return err
		}

		booking := &domain.Booking{
			SlotID:     slot.ID,
			TrainerID:  slot.TrainerID,
			UserID:     req.UserID,
			LocationID: req.LocationID,
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			Price:      price,
			Note:       req.Note,
			Status:     domain.StatusPending,
		}

		result, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})

	switch {
	case err == nil:
		uc.logger.Info("CheckoutCart: booked slot=%d as booking=%d for user=%d", item.SlotID, result.ID, req.UserID)
		return result, ""
	case errors.Is(err, slotRepo.ErrSlotNotFound), errors.Is(err, slotRepo.ErrSlotNotAvailable):
		uc.logger.Warn("CheckoutCart: slot=%d unavailable for user=%d", item.SlotID, req.UserID)
		return nil, ReasonSlotUnavailable
	case errors.Is(err, errSlotInPast):
		uc.logger.Warn("CheckoutCart: slot=%d already started, item=%d skipped", item.SlotID, item.ID)
		return nil, ReasonSlotInPast
	default:
		uc.logger.Error("CheckoutCart: failed to checkout item=%d (slot=%d): %v", item.ID, item.SlotID, err)
		return nil, ReasonInternalError
	}
}

// resolveRates получает текущие ставки всех тренеров из корзины
func (uc *UseCase) resolveRates(ctx context.Context, items []*domain.CartItem) map[int64]int64 {
	rates := make(map[int64]int64)
	seen := make(map[int64]bool)

	for _, item := range items {
		if seen[item.TrainerID] {
			continue
		}
		seen[item.TrainerID] = true

		rate, err := uc.trainerClient.GetTrainerRate(ctx, item.TrainerID)
		if err != nil {
			uc.logger.Warn("CheckoutCart: failed to get rate for trainer=%d: %v", item.TrainerID, err)
			continue
		}
		rates[item.TrainerID] = rate
	}
	return rates
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}

// errSlotInPast внутренняя ошибка для выхода из транзакции
var errSlotInPast = errors.New("slot is in the past")
