package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainerService/internal/domain"
	trainerClient "github.com/m04kA/SMC-TrainerService/internal/integrations/trainerservice"
)

// UseCase use case для получения свободных слотов тренера
type UseCase struct {
	slotRepo      SlotRepository
	trainerClient TrainerServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	trainerClient TrainerServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		trainerClient: trainerClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Возвращаются только незабронированные слоты, начинающиеся в будущем
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: trainer=%d, date=%s", req.TrainerID, formatDate(req))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты, если она указана
	if req.Date != nil {
		if err := validateDate(*req.Date, now); err != nil {
			uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
			return nil, err
		}
	}

	// 4. Получаем тренера и его ставку
	// При недоступности TrainerService расписание все равно отдаем,
	// но без цен
	var price int64
	trainer, err := uc.trainerClient.GetTrainerWithGracefulDegradation(ctx, req.TrainerID)
	switch {
	case err == nil:
		if !trainer.Active {
			uc.logger.Warn("GetAvailableSlots: trainer id=%d is inactive", req.TrainerID)
			return nil, ErrTrainerInactive
		}
		price = trainer.HourlyRate
	case errors.Is(err, trainerClient.ErrTrainerNotFound):
		uc.logger.Warn("GetAvailableSlots: trainer id=%d not found", req.TrainerID)
		return nil, ErrTrainerNotFound
	case errors.Is(err, trainerClient.ErrServiceDegraded):
		uc.logger.Warn("GetAvailableSlots: trainer service degraded, slots returned without prices")
	default:
		uc.logger.Error("GetAvailableSlots: failed to get trainer id=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: failed to get trainer: %v", ErrInternal, err)
	}

	// 5. Получаем свободные будущие слоты тренера
	slots, err := uc.slotRepo.GetByTrainerWithFilter(ctx, domain.TrainerSlotsFilter{
		TrainerID:  req.TrainerID,
		Date:       req.Date,
		OnlyFree:   true,
		OnlyFuture: true,
		Now:        now,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get slots for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	// 6. Собираем ответ
	result := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		result = append(result, Slot{
			ID:              slot.ID,
			StartTime:       slot.StartTime,
			EndTime:         slot.EndTime,
			DurationMinutes: int(slot.Duration().Minutes()),
			Price:           price,
		})
	}

	uc.logger.Info("GetAvailableSlots: found %d available slots for trainer=%d", len(result), req.TrainerID)

	return &Response{
		TrainerID: req.TrainerID,
		Date:      req.Date,
		Slots:     result,
	}, nil
}

func formatDate(req *Request) string {
	if req.Date == nil {
		return "any"
	}
	return req.Date.Format(domain.DateFormat)
}
