package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainerService/internal/domain"
	slotRepo "github.com/m04kA/SMC-TrainerService/internal/infra/storage/slot"
	trainerClient "github.com/m04kA/SMC-TrainerService/internal/integrations/trainerservice"
	"github.com/m04kA/SMC-TrainerService/internal/service/schedule/models"
)

// Service сервис управления расписанием тренера
type Service struct {
	slotRepo      SlotRepository
	trainerClient TrainerServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	slotRepo SlotRepository,
	trainerClient TrainerServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:      slotRepo,
		trainerClient: trainerClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// CreateSlot создает новый слот в расписании тренера
// Проверка пересечений и вставка выполняются в serializable-транзакции,
// чтобы два конкурентных запроса не создали пересекающиеся слоты
func (s *Service) CreateSlot(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("CreateSlot: trainer=%d creating slot [%s, %s)",
		req.TrainerID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	if req.TrainerID <= 0 {
		return nil, fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}
	if err := s.validateRange(req.StartTime, req.EndTime); err != nil {
		s.logger.Warn("CreateSlot: invalid range for trainer=%d: %v", req.TrainerID, err)
		return nil, err
	}

	if _, err := s.trainerClient.GetTrainer(ctx, req.TrainerID); err != nil {
		if errors.Is(err, trainerClient.ErrTrainerNotFound) {
			s.logger.Warn("CreateSlot: trainer id=%d not found", req.TrainerID)
			return nil, ErrTrainerNotFound
		}
		s.logger.Error("CreateSlot: failed to get trainer id=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: CreateSlot - failed to get trainer: %v", ErrInternal, err)
	}

	var created *domain.Slot
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		count, err := s.slotRepo.CountOverlapping(ctx, req.TrainerID, req.StartTime, req.EndTime)
		if err != nil {
			return fmt.Errorf("count overlapping: %w", err)
		}
		if count > 0 {
			return ErrOverlappingSlot
		}

		created, err = s.slotRepo.Create(ctx, &domain.Slot{
			TrainerID: req.TrainerID,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
		if err != nil {
			return fmt.Errorf("create slot: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOverlappingSlot) {
			s.logger.Warn("CreateSlot: slot overlaps existing schedule of trainer=%d", req.TrainerID)
			return nil, ErrOverlappingSlot
		}
		s.logger.Error("CreateSlot: transaction failed for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: CreateSlot - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSlot: successfully created slot id=%d for trainer=%d", created.ID, req.TrainerID)
	return models.FromDomainSlot(created), nil
}

// GetTrainerSlots возвращает все слоты тренера (занятые и свободные)
// Опциональный фильтр по дате отбирает слоты, начинающиеся в указанный день
func (s *Service) GetTrainerSlots(ctx context.Context, trainerID int64, date *time.Time) (*models.SlotListResponse, error) {
	if trainerID <= 0 {
		return nil, fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}

	slots, err := s.slotRepo.GetByTrainerWithFilter(ctx, domain.TrainerSlotsFilter{
		TrainerID: trainerID,
		Date:      date,
	})
	if err != nil {
		s.logger.Error("GetTrainerSlots: repository error for trainer=%d: %v", trainerID, err)
		return nil, fmt.Errorf("%w: GetTrainerSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTrainerSlots: found %d slots for trainer=%d", len(slots), trainerID)
	return models.FromDomainSlotList(slots), nil
}

// DeleteSlot удаляет свободный слот из расписания тренера
// Забронированный слот удалить нельзя: сначала должно быть отменено бронирование
func (s *Service) DeleteSlot(ctx context.Context, trainerID, slotID int64) error {
	s.logger.Info("DeleteSlot: trainer=%d deleting slot=%d", trainerID, slotID)

	slot, err := s.getOwnedSlot(ctx, "DeleteSlot", trainerID, slotID)
	if err != nil {
		return err
	}

	if err := s.slotRepo.DeleteFree(ctx, slot.ID); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotAlreadyBooked):
			s.logger.Warn("DeleteSlot: slot id=%d already booked", slotID)
			return ErrSlotAlreadyBooked
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			return ErrSlotNotFound
		default:
			s.logger.Error("DeleteSlot: repository error for slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: DeleteSlot - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("DeleteSlot: successfully deleted slot id=%d", slotID)
	return nil
}

// ReleaseSlot вручную возвращает занятый слот в продажу
// Используется тренером после отмены бронирования, когда слот не был
// освобожден автоматически
func (s *Service) ReleaseSlot(ctx context.Context, trainerID, slotID int64) error {
	s.logger.Info("ReleaseSlot: trainer=%d releasing slot=%d", trainerID, slotID)

	slot, err := s.getOwnedSlot(ctx, "ReleaseSlot", trainerID, slotID)
	if err != nil {
		return err
	}

	if err := s.slotRepo.Release(ctx, slot.ID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotBooked) {
			s.logger.Warn("ReleaseSlot: slot id=%d is not booked", slotID)
			return ErrSlotNotBooked
		}
		s.logger.Error("ReleaseSlot: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: ReleaseSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReleaseSlot: successfully released slot id=%d", slotID)
	return nil
}

// getOwnedSlot загружает слот и проверяет, что он принадлежит тренеру
func (s *Service) getOwnedSlot(ctx context.Context, op string, trainerID, slotID int64) (*domain.Slot, error) {
	if trainerID <= 0 || slotID <= 0 {
		return nil, fmt.Errorf("%w: trainerID and slotID must be positive", ErrInvalidInput)
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("%s: slot id=%d not found", op, slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("%s: repository error for slot id=%d: %v", op, slotID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if slot.TrainerID != trainerID {
		s.logger.Warn("%s: slot id=%d belongs to trainer=%d, access denied for trainer=%d", op, slotID, slot.TrainerID, trainerID)
		return nil, ErrAccessDenied
	}
	return slot, nil
}

// validateRange проверяет корректность границ слота
func (s *Service) validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidRange)
	}

	duration := end.Sub(start)
	if duration < domain.MinSlotDurationMinutes*time.Minute {
		return fmt.Errorf("%w: slot shorter than %d minutes", ErrInvalidRange, domain.MinSlotDurationMinutes)
	}
	if duration > domain.MaxSlotDurationMinutes*time.Minute {
		return fmt.Errorf("%w: slot longer than %d minutes", ErrInvalidRange, domain.MaxSlotDurationMinutes)
	}

	if start.Before(s.timeProvider.Now()) {
		return fmt.Errorf("%w: slot must start in the future", ErrInvalidRange)
	}
	return nil
}
