package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TrainerService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TrainerService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-TrainerService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TrainerService/pkg/ptr"
)

const (
	testUserID    = int64(100)
	testTrainerID = int64(200)
	testBookingID = int64(1)
	testSlotID    = int64(50)
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	booking *domain.Booking
	advice  []*domain.Advice

	cancelledWith *domain.CancelledBy
	updatedStatus *domain.BookingStatus
	reviewSet     bool
	setReviewErr  error
	createdAdvice *domain.Advice
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) GetByUserID(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	if f.booking != nil && f.booking.UserID == filter.UserID {
		return []*domain.Booking{f.booking}, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) GetByTrainerWithFilter(ctx context.Context, filter domain.TrainerBookingsFilter) ([]*domain.Booking, error) {
	if f.booking != nil && f.booking.TrainerID == filter.TrainerID {
		return []*domain.Booking{f.booking}, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if f.booking == nil || f.booking.ID != id {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedStatus = &status
	return nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, reason string, by domain.CancelledBy) error {
	if f.booking == nil || f.booking.ID != id {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelledWith = &by
	return nil
}

func (f *fakeBookingRepo) SetReview(ctx context.Context, id int64, rating int, comment string) error {
	if f.setReviewErr != nil {
		return f.setReviewErr
	}
	f.reviewSet = true
	return nil
}

func (f *fakeBookingRepo) CreateAdvice(ctx context.Context, advice *domain.Advice) (*domain.Advice, error) {
	created := *advice
	created.ID = 77
	f.createdAdvice = &created
	return &created, nil
}

func (f *fakeBookingRepo) ListAdvice(ctx context.Context, bookingID int64) ([]*domain.Advice, error) {
	return f.advice, nil
}

type fakeSlotRepo struct {
	released []int64
}

func (f *fakeSlotRepo) Release(ctx context.Context, id int64) error {
	f.released = append(f.released, id)
	return nil
}

type fakeNotifyClient struct {
	events []notifyservice.BookingEvent
}

func (f *fakeNotifyClient) SendBestEffort(ctx context.Context, event notifyservice.BookingEvent) {
	f.events = append(f.events, event)
}

// testBooking бронирование, начинающееся через 48 часов
func testBooking(status domain.BookingStatus, now time.Time) *domain.Booking {
	return &domain.Booking{
		ID:        testBookingID,
		SlotID:    testSlotID,
		TrainerID: testTrainerID,
		UserID:    testUserID,
		StartTime: now.Add(48 * time.Hour),
		EndTime:   now.Add(49 * time.Hour),
		Price:     1500_00,
		Status:    status,
	}
}

func newTestService(repo *fakeBookingRepo, slots *fakeSlotRepo, notify *fakeNotifyClient, policy Policy, now time.Time) *Service {
	svc := NewService(repo, slots, notify, fakeTxManager{}, policy, nopLogger{})
	svc.timeProvider = &fakeTimeProvider{now: now}
	return svc
}

func defaultPolicy() Policy {
	return Policy{CancellationWindow: 24 * time.Hour}
}

func TestGetByID_AccessControl(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed, now)}
	svc := newTestService(repo, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

	// Владелец и тренер видят бронирование
	_, err := svc.GetByID(context.Background(), testBookingID, testUserID)
	assert.NoError(t, err)
	_, err = svc.GetByID(context.Background(), testBookingID, testTrainerID)
	assert.NoError(t, err)

	// Посторонний - нет
	_, err = svc.GetByID(context.Background(), testBookingID, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeBookingRepo{}, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

	_, err := svc.GetByID(context.Background(), testBookingID, testUserID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ByUser(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed, now)}
	slots := &fakeSlotRepo{}
	notify := &fakeNotifyClient{}
	svc := newTestService(repo, slots, notify, defaultPolicy(), now)

	err := svc.Cancel(context.Background(), testBookingID, &models.CancelBookingRequest{
		ActorID: testUserID,
		Reason:  "не смогу прийти",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.cancelledWith)
	assert.Equal(t, domain.CancelledByUser, *repo.cancelledWith)

	// Политика release_slot_on_cancel выключена: слот остается потребленным
	assert.Empty(t, slots.released)

	require.Len(t, notify.events, 1)
	assert.Equal(t, notifyservice.EventBookingCancelled, notify.events[0].Type)
	require.NotNil(t, notify.events[0].Reason)
}

func TestCancel_ByTrainer(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending, now)}
	svc := newTestService(repo, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

	err := svc.Cancel(context.Background(), testBookingID, &models.CancelBookingRequest{
		ActorID: testTrainerID,
		Reason:  "болезнь",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.cancelledWith)
	assert.Equal(t, domain.CancelledByTrainer, *repo.cancelledWith)
}

func TestCancel_ReleasesSlotWhenPolicyEnabled(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed, now)}
	slots := &fakeSlotRepo{}
	policy := Policy{CancellationWindow: 24 * time.Hour, ReleaseSlotOnCancel: true}
	svc := newTestService(repo, slots, &fakeNotifyClient{}, policy, now)

	err := svc.Cancel(context.Background(), testBookingID, &models.CancelBookingRequest{
		ActorID: testUserID,
		Reason:  "перенос",
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{testSlotID}, slots.released)
}

func TestCancel_Guards(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		booking *domain.Booking
		req     *models.CancelBookingRequest
		wantErr error
	}{
		{
			name:    "missing reason",
			booking: testBooking(domain.StatusConfirmed, now),
			req:     &models.CancelBookingRequest{ActorID: testUserID, Reason: "   "},
			wantErr: ErrMissingReason,
		},
		{
			name:    "stranger cannot cancel",
			booking: testBooking(domain.StatusConfirmed, now),
			req:     &models.CancelBookingRequest{ActorID: 999, Reason: "whatever"},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "cancelled is terminal",
			booking: testBooking(domain.StatusCancelled, now),
			req:     &models.CancelBookingRequest{ActorID: testUserID, Reason: "again"},
			wantErr: ErrTerminalState,
		},
		{
			name:    "completed is terminal",
			booking: testBooking(domain.StatusCompleted, now),
			req:     &models.CancelBookingRequest{ActorID: testUserID, Reason: "late"},
			wantErr: ErrTerminalState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{booking: tt.booking}
			svc := newTestService(repo, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

			err := svc.Cancel(context.Background(), testBookingID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, repo.cancelledWith)
		})
	}
}

func TestCancel_WindowExpired(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	booking := testBooking(domain.StatusConfirmed, now)
	// До начала осталось меньше окна отмены
	booking.StartTime = now.Add(2 * time.Hour)
	booking.EndTime = now.Add(3 * time.Hour)

	repo := &fakeBookingRepo{booking: booking}
	svc := newTestService(repo, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

	err := svc.Cancel(context.Background(), testBookingID, &models.CancelBookingRequest{
		ActorID: testUserID,
		Reason:  "передумал",
	})
	assert.ErrorIs(t, err, ErrCancellationWindowExpired)
}

func TestUpdateStatus_Confirm(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending, now)}
	notify := &fakeNotifyClient{}
	svc := newTestService(repo, &fakeSlotRepo{}, notify, defaultPolicy(), now)

	err := svc.UpdateStatus(context.Background(), testBookingID, &models.UpdateStatusRequest{
		TrainerID: testTrainerID,
		Status:    "confirmed",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.updatedStatus)

	require.Len(t, notify.events, 1)
	assert.Equal(t, notifyservice.EventBookingConfirmed, notify.events[0].Type)
}

func TestUpdateStatus_CompleteAfterSession(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	booking := testBooking(domain.StatusConfirmed, now)
	booking.StartTime = now.Add(-2 * time.Hour)
	booking.EndTime = now.Add(-time.Hour)

	repo := &fakeBookingRepo{booking: booking}
	notify := &fakeNotifyClient{}
	svc := newTestService(repo, &fakeSlotRepo{}, notify, defaultPolicy(), now)

	err := svc.UpdateStatus(context.Background(), testBookingID, &models.UpdateStatusRequest{
		TrainerID: testTrainerID,
		Status:    "completed",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusCompleted, *repo.updatedStatus)
	require.Len(t, notify.events, 1)
	assert.Equal(t, notifyservice.EventBookingCompleted, notify.events[0].Type)
}

func TestUpdateStatus_Guards(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		booking *domain.Booking
		req     *models.UpdateStatusRequest
		wantErr error
	}{
		{
			name:    "invalid status string",
			booking: testBooking(domain.StatusPending, now),
			req:     &models.UpdateStatusRequest{TrainerID: testTrainerID, Status: "bogus"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "cancel not allowed via status update",
			booking: testBooking(domain.StatusPending, now),
			req:     &models.UpdateStatusRequest{TrainerID: testTrainerID, Status: "cancelled"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "only the trainer can update",
			booking: testBooking(domain.StatusPending, now),
			req:     &models.UpdateStatusRequest{TrainerID: 999, Status: "confirmed"},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "pending cannot be completed",
			booking: testBooking(domain.StatusPending, now),
			req:     &models.UpdateStatusRequest{TrainerID: testTrainerID, Status: "completed"},
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "completed is terminal",
			booking: testBooking(domain.StatusCompleted, now),
			req:     &models.UpdateStatusRequest{TrainerID: testTrainerID, Status: "confirmed"},
			wantErr: ErrTerminalState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{booking: tt.booking}
			svc := newTestService(repo, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

			err := svc.UpdateStatus(context.Background(), testBookingID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, repo.updatedStatus)
		})
	}
}

func TestUpdateStatus_SessionNotYetOver(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	booking := testBooking(domain.StatusConfirmed, now)
	// Сессия еще идет
	booking.StartTime = now.Add(-30 * time.Minute)
	booking.EndTime = now.Add(30 * time.Minute)

	repo := &fakeBookingRepo{booking: booking}
	svc := newTestService(repo, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

	err := svc.UpdateStatus(context.Background(), testBookingID, &models.UpdateStatusRequest{
		TrainerID: testTrainerID,
		Status:    "completed",
	})
	assert.ErrorIs(t, err, ErrSessionNotYetOver)
}

func TestAddAdvice(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("success on completed booking", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: testBooking(domain.StatusCompleted, now)}
		svc := newTestService(repo, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

		result, err := svc.AddAdvice(context.Background(), testBookingID, &models.AddAdviceRequest{
			TrainerID: testTrainerID,
			Title:     "Техника приседаний",
			Content:   []string{"Держать спину прямо", "Колени не выходят за носки"},
		})
		require.NoError(t, err)
		assert.NotZero(t, result.ID)
		assert.Len(t, result.Content, 2)
	})

	t.Run("rejected before completion", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed, now)}
		svc := newTestService(repo, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

		_, err := svc.AddAdvice(context.Background(), testBookingID, &models.AddAdviceRequest{
			TrainerID: testTrainerID,
			Title:     "Рано",
			Content:   []string{"..."},
		})
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("only the trainer can add advice", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: testBooking(domain.StatusCompleted, now)}
		svc := newTestService(repo, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

		_, err := svc.AddAdvice(context.Background(), testBookingID, &models.AddAdviceRequest{
			TrainerID: testUserID,
			Title:     "Чужое",
			Content:   []string{"..."},
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: testBooking(domain.StatusCompleted, now)}
		svc := newTestService(repo, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

		_, err := svc.AddAdvice(context.Background(), testBookingID, &models.AddAdviceRequest{
			TrainerID: testTrainerID,
			Title:     "  ",
			Content:   []string{"..."},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestAddReview(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: testBooking(domain.StatusCompleted, now)}
		svc := newTestService(repo, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

		err := svc.AddReview(context.Background(), testBookingID, &models.AddReviewRequest{
			UserID:  testUserID,
			Rating:  5,
			Comment: "Отличная тренировка",
		})
		require.NoError(t, err)
		assert.True(t, repo.reviewSet)
	})

	t.Run("rating out of range", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: testBooking(domain.StatusCompleted, now)}
		svc := newTestService(repo, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

		for _, rating := range []int{0, 6, -1} {
			err := svc.AddReview(context.Background(), testBookingID, &models.AddReviewRequest{
				UserID: testUserID,
				Rating: rating,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})

	t.Run("only the owner can review", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: testBooking(domain.StatusCompleted, now)}
		svc := newTestService(repo, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

		err := svc.AddReview(context.Background(), testBookingID, &models.AddReviewRequest{
			UserID: testTrainerID,
			Rating: 4,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("rejected before completion", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed, now)}
		svc := newTestService(repo, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

		err := svc.AddReview(context.Background(), testBookingID, &models.AddReviewRequest{
			UserID: testUserID,
			Rating: 4,
		})
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("second review rejected", func(t *testing.T) {
		repo := &fakeBookingRepo{
			booking:      testBooking(domain.StatusCompleted, now),
			setReviewErr: bookingRepo.ErrReviewAlreadyExists,
		}
		svc := newTestService(repo, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

		err := svc.AddReview(context.Background(), testBookingID, &models.AddReviewRequest{
			UserID: testUserID,
			Rating: 4,
		})
		assert.ErrorIs(t, err, ErrReviewAlreadyExists)
	})
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed, now)}
	svc := newTestService(repo, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

	result, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: testUserID,
		Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: testUserID,
		Status: ptr.Ptr("bogus"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetTrainerBookings_OnlySelf(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed, now)}
	svc := newTestService(repo, &fakeSlotRepo{}, &fakeNotifyClient{}, defaultPolicy(), now)

	_, err := svc.GetTrainerBookings(context.Background(), &models.GetTrainerBookingsRequest{
		TrainerID: testTrainerID,
		ActorID:   999,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	result, err := svc.GetTrainerBookings(context.Background(), &models.GetTrainerBookingsRequest{
		TrainerID: testTrainerID,
		ActorID:   testTrainerID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
}
