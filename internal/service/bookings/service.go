package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TrainerService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TrainerService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-TrainerService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TrainerService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-TrainerService/internal/service/bookings/models"
)

// Policy настраиваемые бизнес-правила lifecycle бронирований
type Policy struct {
	// CancellationWindow минимальный интервал до начала сессии, при котором отмена ещё разрешена
	CancellationWindow time.Duration
	// ReleaseSlotOnCancel освобождать ли слот при отмене бронирования
	// По умолчанию выключено: освобожденный слот возвращается в продажу
	// только явным действием тренера
	ReleaseSlotOnCancel bool
}

// Service сервис lifecycle бронирований
// Все изменения статуса проходят через таблицу переходов domain.ValidateTransition
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	notifyClient NotifyClient
	txManager    TransactionManager
	timeProvider TimeProvider
	policy       Policy
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	notifyClient NotifyClient,
	txManager TransactionManager,
	policy Policy,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		policy:       policy,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID вместе с рекомендациями тренера
// Доступно владельцу бронирования и его тренеру
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d", id, actorID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != actorID && booking.TrainerID != actorID {
		s.logger.Warn("GetByID: access denied for actor=%d to booking id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	advices, err := s.bookingRepo.ListAdvice(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to list advice for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainBooking(booking)
	resp.Advice = models.FromDomainAdviceList(advices)

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return resp, nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	filter := domain.UserBookingsFilter{UserID: req.UserID}
	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetTrainerBookings получает бронирования тренера с фильтрацией по периоду и статусу
// Доступно только самому тренеру
func (s *Service) GetTrainerBookings(ctx context.Context, req *models.GetTrainerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetTrainerBookings: fetching bookings for trainer=%d, actor=%d", req.TrainerID, req.ActorID)

	if req.ActorID != req.TrainerID {
		s.logger.Warn("GetTrainerBookings: access denied for actor=%d to trainer=%d schedule", req.ActorID, req.TrainerID)
		return nil, ErrAccessDenied
	}

	filter := domain.TrainerBookingsFilter{
		TrainerID:       req.TrainerID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IncludeInactive: req.IncludeInactive,
	}
	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetTrainerBookings: invalid status=%s for trainer=%d", *req.Status, req.TrainerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetByTrainerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTrainerBookings: repository error for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: GetTrainerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTrainerBookings: successfully fetched %d bookings for trainer=%d", len(bookings), req.TrainerID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит бронирование в статус confirmed или completed
// Доступно только тренеру бронирования
// confirmed: без ограничений по времени
// completed: только после окончания сессии
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by trainer=%d",
		bookingID, req.Status, req.TrainerID)

	newStatus, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Через этот метод доступны только переходы, инициируемые тренером
	// Отмена идет отдельным методом Cancel с причиной и окном отмены
	if newStatus != domain.StatusConfirmed && newStatus != domain.StatusCompleted {
		s.logger.Warn("UpdateStatus: status=%s not allowed via UpdateStatus for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: status must be confirmed or completed", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return err
	}

	if booking.TrainerID != req.TrainerID {
		s.logger.Warn("UpdateStatus: access denied for trainer=%d to booking id=%d", req.TrainerID, bookingID)
		return ErrAccessDenied
	}

	if err := s.validateTransition(booking.Status, newStatus, bookingID); err != nil {
		return err
	}

	// Завершить сессию можно только после её фактического окончания
	if newStatus == domain.StatusCompleted {
		now := s.timeProvider.Now()
		if !booking.SessionOver(now) {
			s.logger.Warn("UpdateStatus: session not over for booking id=%d (ends at %s)",
				bookingID, booking.EndTime.Format(time.RFC3339))
			return ErrSessionNotYetOver
		}
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	eventType := notifyservice.EventBookingConfirmed
	if newStatus == domain.StatusCompleted {
		eventType = notifyservice.EventBookingCompleted
	}
	s.notifyClient.SendBestEffort(ctx, notifyservice.BookingEvent{
		Type:      eventType,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		TrainerID: booking.TrainerID,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
	})

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Cancel отменяет бронирование
// Отменить может владелец или тренер, при соблюдении двух условий:
// - до начала сессии осталось больше окна отмены
// - указана непустая причина
// Слот при этом остаётся потребленным, если политика release_slot_on_cancel выключена
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by actor=%d", bookingID, req.ActorID)

	if strings.TrimSpace(req.Reason) == "" {
		s.logger.Warn("Cancel: missing reason for booking id=%d", bookingID)
		return ErrMissingReason
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: reason too long for booking id=%d", bookingID)
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	// Определяем инициатора отмены
	var cancelledBy domain.CancelledBy
	switch req.ActorID {
	case booking.UserID:
		cancelledBy = domain.CancelledByUser
	case booking.TrainerID:
		cancelledBy = domain.CancelledByTrainer
	default:
		s.logger.Warn("Cancel: access denied for actor=%d to booking id=%d", req.ActorID, bookingID)
		return ErrAccessDenied
	}

	if err := s.validateTransition(booking.Status, domain.StatusCancelled, bookingID); err != nil {
		return err
	}

	now := s.timeProvider.Now()
	if !booking.WithinCancellationWindow(now, s.policy.CancellationWindow) {
		s.logger.Warn("Cancel: cancellation window expired for booking id=%d (starts at %s)",
			bookingID, booking.StartTime.Format(time.RFC3339))
		return ErrCancellationWindowExpired
	}

	// Отмена и освобождение слота (если политика включена) применяются атомарно
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.Reason, cancelledBy); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if s.policy.ReleaseSlotOnCancel {
			if err := s.slotRepo.Release(txCtx, booking.SlotID); err != nil && !errors.Is(err, slotRepo.ErrSlotNotBooked) {
				return fmt.Errorf("%w: Cancel - failed to release slot: %v", ErrInternal, err)
			}
			s.logger.Info("Cancel: released slot id=%d for cancelled booking id=%d", booking.SlotID, bookingID)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", bookingID, err)
		return err
	}

	s.notifyClient.SendBestEffort(ctx, notifyservice.BookingEvent{
		Type:      notifyservice.EventBookingCancelled,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		TrainerID: booking.TrainerID,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Reason:    &req.Reason,
	})

	s.logger.Info("Cancel: successfully cancelled booking id=%d by %s", bookingID, cancelledBy)
	return nil
}

// AddAdvice добавляет рекомендацию тренера к завершенному бронированию
func (s *Service) AddAdvice(ctx context.Context, bookingID int64, req *models.AddAdviceRequest) (*models.AdviceResponse, error) {
	s.logger.Info("AddAdvice: adding advice to booking id=%d by trainer=%d", bookingID, req.TrainerID)

	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(req.Title) > domain.MaxAdviceTitleLength {
		return nil, fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, domain.MaxAdviceTitleLength)
	}
	if len(req.Content) == 0 {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "AddAdvice", bookingID)
	if err != nil {
		return nil, err
	}

	if booking.TrainerID != req.TrainerID {
		s.logger.Warn("AddAdvice: access denied for trainer=%d to booking id=%d", req.TrainerID, bookingID)
		return nil, ErrAccessDenied
	}

	// Рекомендации доступны только после завершения сессии
	if booking.Status != domain.StatusCompleted {
		s.logger.Warn("AddAdvice: booking id=%d is not completed, status=%s", bookingID, booking.Status)
		return nil, ErrInvalidState
	}

	advice, err := s.bookingRepo.CreateAdvice(ctx, &domain.Advice{
		BookingID: bookingID,
		Title:     req.Title,
		Content:   req.Content,
	})
	if err != nil {
		s.logger.Error("AddAdvice: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: AddAdvice - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddAdvice: successfully added advice id=%d to booking id=%d", advice.ID, bookingID)
	return models.FromDomainAdvice(advice), nil
}

// AddReview добавляет отзыв пользователя к завершенному бронированию
// Отзыв может оставить только владелец бронирования и только один раз
func (s *Service) AddReview(ctx context.Context, bookingID int64, req *models.AddReviewRequest) error {
	s.logger.Info("AddReview: adding review to booking id=%d by user=%d", bookingID, req.UserID)

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		s.logger.Warn("AddReview: invalid rating=%d for booking id=%d", req.Rating, bookingID)
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	booking, err := s.getBooking(ctx, "AddReview", bookingID)
	if err != nil {
		return err
	}

	if booking.UserID != req.UserID {
		s.logger.Warn("AddReview: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if booking.Status != domain.StatusCompleted {
		s.logger.Warn("AddReview: booking id=%d is not completed, status=%s", bookingID, booking.Status)
		return ErrInvalidState
	}

	if err := s.bookingRepo.SetReview(ctx, bookingID, req.Rating, req.Comment); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrReviewAlreadyExists):
			s.logger.Warn("AddReview: review already exists for booking id=%d", bookingID)
			return ErrReviewAlreadyExists
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return ErrBookingNotFound
		default:
			s.logger.Error("AddReview: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: AddReview - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("AddReview: successfully added review to booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

// getBooking получает бронирование, транслируя ошибку репозитория в ошибку сервиса
func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// validateTransition проверяет переход по таблице статусов и транслирует ошибки domain
func (s *Service) validateTransition(from, to domain.BookingStatus, bookingID int64) error {
	if err := domain.ValidateTransition(from, to); err != nil {
		switch {
		case errors.Is(err, domain.ErrTerminalState):
			s.logger.Warn("transition rejected: booking id=%d is terminal (status=%s)", bookingID, from)
			return ErrTerminalState
		case errors.Is(err, domain.ErrInvalidTransition):
			s.logger.Warn("transition rejected: booking id=%d, %s -> %s", bookingID, from, to)
			return ErrInvalidTransition
		default:
			return fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
	}
	return nil
}
