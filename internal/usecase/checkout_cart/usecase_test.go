package checkout_cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerService/internal/domain"
	"github.com/m04kA/SMC-TrainerService/internal/infra/cartstore"
	slotRepo "github.com/m04kA/SMC-TrainerService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TrainerService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-TrainerService/internal/integrations/trainerservice"
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

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	nextID  int64
	created []*domain.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	result := *booking
	result.ID = f.nextID
	f.created = append(f.created, &result)
	return &result, nil
}

type fakeSlotRepo struct {
	slots map[int64]*domain.Slot
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (f *fakeSlotRepo) Claim(ctx context.Context, id int64) error {
	slot, ok := f.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if slot.Booked {
		return slotRepo.ErrSlotNotAvailable
	}
	slot.Booked = true
	return nil
}

type fakeTrainerClient struct {
	rates map[int64]int64
}

func (f *fakeTrainerClient) GetTrainerRate(ctx context.Context, trainerID int64) (int64, error) {
	rate, ok := f.rates[trainerID]
	if !ok {
		return 0, trainerservice.ErrServiceDegraded
	}
	return rate, nil
}

type fakeNotifyClient struct {
	events []notifyservice.BookingEvent
}

func (f *fakeNotifyClient) SendBestEffort(ctx context.Context, event notifyservice.BookingEvent) {
	f.events = append(f.events, event)
}

type checkoutEnv struct {
	uc       *UseCase
	store    *cartstore.Store
	slots    *fakeSlotRepo
	bookings *fakeBookingRepo
	notify   *fakeNotifyClient
	now      time.Time
}

func newCheckoutEnv(slots map[int64]*domain.Slot, rates map[int64]int64) *checkoutEnv {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	env := &checkoutEnv{
		store:    cartstore.NewStore(),
		slots:    &fakeSlotRepo{slots: slots},
		bookings: &fakeBookingRepo{},
		notify:   &fakeNotifyClient{},
		now:      now,
	}
	env.uc = NewUseCase(
		env.bookings,
		env.slots,
		env.store,
		&fakeTrainerClient{rates: rates},
		env.notify,
		fakeTxManager{},
		nopLogger{},
	)
	env.uc.timeProvider = &fakeTimeProvider{now: now}
	return env
}

func (e *checkoutEnv) addToCart(t *testing.T, userID int64, slot *domain.Slot) *domain.CartItem {
	t.Helper()
	item, err := e.store.Add(userID, &domain.CartItem{
		TrainerID: slot.TrainerID,
		SlotID:    slot.ID,
		SlotStart: slot.StartTime,
		SlotEnd:   slot.EndTime,
	})
	require.NoError(t, err)
	return item
}

func futureSlot(id, trainerID int64, now time.Time, offset time.Duration) *domain.Slot {
	return &domain.Slot{
		ID:        id,
		TrainerID: trainerID,
		StartTime: now.Add(offset),
		EndTime:   now.Add(offset + time.Hour),
	}
}

func TestExecute_Success(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	slot := futureSlot(50, 10, now, 24*time.Hour)
	env := newCheckoutEnv(map[int64]*domain.Slot{50: slot}, map[int64]int64{10: 2500_00})
	env.addToCart(t, 1, slot)

	resp, err := env.uc.Execute(context.Background(), &Request{UserID: 1, LocationID: 5})
	require.NoError(t, err)

	require.Len(t, resp.Succeeded, 1)
	assert.Empty(t, resp.Failed)

	result := resp.Succeeded[0]
	assert.Equal(t, int64(50), result.SlotID)
	assert.Equal(t, int64(2500_00), result.Price)
	assert.Equal(t, string(domain.StatusPending), result.Status)

	// Слот захвачен, бронирование создано с замороженной ценой
	assert.True(t, env.slots.slots[50].Booked)
	require.Len(t, env.bookings.created, 1)
	assert.Equal(t, int64(5), env.bookings.created[0].LocationID)

	// Корзина опустела
	assert.Empty(t, env.store.List(1))

	// Уведомление отправлено
	require.Len(t, env.notify.events, 1)
	assert.Equal(t, notifyservice.EventBookingCreated, env.notify.events[0].Type)
}

func TestExecute_EmptyCart(t *testing.T) {
	env := newCheckoutEnv(nil, nil)

	_, err := env.uc.Execute(context.Background(), &Request{UserID: 1, LocationID: 5})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestExecute_Validation(t *testing.T) {
	env := newCheckoutEnv(nil, nil)

	_, err := env.uc.Execute(context.Background(), &Request{UserID: 0, LocationID: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.uc.Execute(context.Background(), &Request{UserID: 1, LocationID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	longNote := make([]byte, domain.MaxNoteLength+1)
	for i := range longNote {
		longNote[i] = 'a'
	}
	note := string(longNote)
	_, err = env.uc.Execute(context.Background(), &Request{UserID: 1, LocationID: 5, Note: &note})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_PartialSuccess(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	free := futureSlot(50, 10, now, 24*time.Hour)
	taken := futureSlot(51, 10, now, 26*time.Hour)
	taken.Booked = true

	env := newCheckoutEnv(map[int64]*domain.Slot{50: free, 51: taken}, map[int64]int64{10: 2000_00})
	okItem := env.addToCart(t, 1, free)
	failedItem := env.addToCart(t, 1, taken)

	resp, err := env.uc.Execute(context.Background(), &Request{UserID: 1, LocationID: 5})
	require.NoError(t, err)

	require.Len(t, resp.Succeeded, 1)
	assert.Equal(t, okItem.ID, resp.Succeeded[0].ItemID)

	require.Len(t, resp.Failed, 1)
	assert.Equal(t, failedItem.ID, resp.Failed[0].ItemID)
	assert.Equal(t, ReasonSlotUnavailable, resp.Failed[0].Reason)

	// Неудачная позиция остается в корзине
	remaining := env.store.List(1)
	require.Len(t, remaining, 1)
	assert.Equal(t, failedItem.ID, remaining[0].ID)
}

func TestExecute_SlotInPast(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	// Слот успел начаться, пока лежал в корзине
	past := futureSlot(50, 10, now, -2*time.Hour)

	env := newCheckoutEnv(map[int64]*domain.Slot{50: past}, map[int64]int64{10: 2000_00})
	env.addToCart(t, 1, past)

	resp, err := env.uc.Execute(context.Background(), &Request{UserID: 1, LocationID: 5})
	require.NoError(t, err)

	assert.Empty(t, resp.Succeeded)
	require.Len(t, resp.Failed, 1)
	assert.Equal(t, ReasonSlotInPast, resp.Failed[0].Reason)

	// Слот не захвачен
	assert.False(t, env.slots.slots[50].Booked)
}

func TestExecute_SlotDeleted(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	ghost := futureSlot(50, 10, now, 24*time.Hour)

	// Слот удален тренером после добавления в корзину
	env := newCheckoutEnv(map[int64]*domain.Slot{}, map[int64]int64{10: 2000_00})
	env.addToCart(t, 1, ghost)

	resp, err := env.uc.Execute(context.Background(), &Request{UserID: 1, LocationID: 5})
	require.NoError(t, err)

	require.Len(t, resp.Failed, 1)
	assert.Equal(t, ReasonSlotUnavailable, resp.Failed[0].Reason)
}

func TestExecute_RateUnavailable(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	slot := futureSlot(50, 10, now, 24*time.Hour)

	// Ставка тренера недоступна: позиция не оформляется
	env := newCheckoutEnv(map[int64]*domain.Slot{50: slot}, nil)
	env.addToCart(t, 1, slot)

	resp, err := env.uc.Execute(context.Background(), &Request{UserID: 1, LocationID: 5})
	require.NoError(t, err)

	assert.Empty(t, resp.Succeeded)
	require.Len(t, resp.Failed, 1)
	assert.Equal(t, ReasonTrainerRateUnavailable, resp.Failed[0].Reason)

	// Слот не захвачен, корзина не тронута
	assert.False(t, env.slots.slots[50].Booked)
	assert.Len(t, env.store.List(1), 1)
}

func TestExecute_FrozenPriceIgnoresCartPrice(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	slot := futureSlot(50, 10, now, 24*time.Hour)

	env := newCheckoutEnv(map[int64]*domain.Slot{50: slot}, map[int64]int64{10: 3000_00})

	// В корзине лежит устаревшая цена
	item, err := env.store.Add(1, &domain.CartItem{
		TrainerID: slot.TrainerID,
		SlotID:    slot.ID,
		SlotStart: slot.StartTime,
		SlotEnd:   slot.EndTime,
		Price:     1000_00,
	})
	require.NoError(t, err)

	resp, err := env.uc.Execute(context.Background(), &Request{UserID: 1, LocationID: 5})
	require.NoError(t, err)

	require.Len(t, resp.Succeeded, 1)
	assert.Equal(t, item.ID, resp.Succeeded[0].ItemID)
	// Фиксируется актуальная ставка, а не цена из корзины
	assert.Equal(t, int64(3000_00), resp.Succeeded[0].Price)
}
