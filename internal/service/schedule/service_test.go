package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerService/internal/domain"
	slotRepo "github.com/m04kA/SMC-TrainerService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TrainerService/internal/integrations/trainerservice"
	"github.com/m04kA/SMC-TrainerService/internal/service/schedule/models"
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

type fakeSlotRepo struct {
	slots       map[int64]*domain.Slot
	overlapping int
	nextID      int64

	deleted  []int64
	released []int64
}

func (f *fakeSlotRepo) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	f.nextID++
	created := *slot
	created.ID = f.nextID
	if f.slots == nil {
		f.slots = make(map[int64]*domain.Slot)
	}
	f.slots[created.ID] = &created
	return &created, nil
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (f *fakeSlotRepo) GetByTrainerWithFilter(ctx context.Context, filter domain.TrainerSlotsFilter) ([]*domain.Slot, error) {
	var result []*domain.Slot
	for _, slot := range f.slots {
		if slot.TrainerID == filter.TrainerID {
			result = append(result, slot)
		}
	}
	return result, nil
}

func (f *fakeSlotRepo) CountOverlapping(ctx context.Context, trainerID int64, start, end time.Time) (int, error) {
	return f.overlapping, nil
}

func (f *fakeSlotRepo) DeleteFree(ctx context.Context, id int64) error {
	slot, ok := f.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if slot.Booked {
		return slotRepo.ErrSlotAlreadyBooked
	}
	delete(f.slots, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSlotRepo) Release(ctx context.Context, id int64) error {
	slot, ok := f.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if !slot.Booked {
		return slotRepo.ErrSlotNotBooked
	}
	slot.Booked = false
	f.released = append(f.released, id)
	return nil
}

type fakeTrainerClient struct {
	err error
}

func (f *fakeTrainerClient) GetTrainer(ctx context.Context, trainerID int64) (*trainerservice.Trainer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &trainerservice.Trainer{ID: trainerID, Active: true, HourlyRate: 2000_00}, nil
}

func newTestService(repo *fakeSlotRepo, trainers *fakeTrainerClient, now time.Time) *Service {
	svc := NewService(repo, trainers, fakeTxManager{}, nopLogger{})
	svc.timeProvider = &fakeTimeProvider{now: now}
	return svc
}

func TestCreateSlot(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		repo := &fakeSlotRepo{}
		svc := newTestService(repo, &fakeTrainerClient{}, now)

		slot, err := svc.CreateSlot(context.Background(), &models.CreateSlotRequest{
			TrainerID: 10,
			StartTime: now.Add(24 * time.Hour),
			EndTime:   now.Add(25 * time.Hour),
		})
		require.NoError(t, err)
		assert.NotZero(t, slot.ID)
		assert.False(t, slot.Booked)
	})

	t.Run("overlap rejected", func(t *testing.T) {
		repo := &fakeSlotRepo{overlapping: 1}
		svc := newTestService(repo, &fakeTrainerClient{}, now)

		_, err := svc.CreateSlot(context.Background(), &models.CreateSlotRequest{
			TrainerID: 10,
			StartTime: now.Add(24 * time.Hour),
			EndTime:   now.Add(25 * time.Hour),
		})
		assert.ErrorIs(t, err, ErrOverlappingSlot)
	})

	t.Run("unknown trainer rejected", func(t *testing.T) {
		svc := newTestService(&fakeSlotRepo{}, &fakeTrainerClient{err: trainerservice.ErrTrainerNotFound}, now)

		_, err := svc.CreateSlot(context.Background(), &models.CreateSlotRequest{
			TrainerID: 10,
			StartTime: now.Add(24 * time.Hour),
			EndTime:   now.Add(25 * time.Hour),
		})
		assert.ErrorIs(t, err, ErrTrainerNotFound)
	})
}

func TestCreateSlot_RangeValidation(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	base := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"end before start", base, base.Add(-time.Hour), ErrInvalidRange},
		{"zero duration", base, base, ErrInvalidRange},
		{"shorter than minimum", base, base.Add(10 * time.Minute), ErrInvalidRange},
		{"longer than maximum", base, base.Add(9 * time.Hour), ErrInvalidRange},
		{"starts in the past", now.Add(-time.Hour), now, ErrInvalidRange},
		{"missing start time", time.Time{}, base, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeSlotRepo{}, &fakeTrainerClient{}, now)

			_, err := svc.CreateSlot(context.Background(), &models.CreateSlotRequest{
				TrainerID: 10,
				StartTime: tt.start,
				EndTime:   tt.end,
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Минимальная и максимальная длительности допустимы
	for _, duration := range []time.Duration{
		domain.MinSlotDurationMinutes * time.Minute,
		domain.MaxSlotDurationMinutes * time.Minute,
	} {
		svc := newTestService(&fakeSlotRepo{}, &fakeTrainerClient{}, now)
		_, err := svc.CreateSlot(context.Background(), &models.CreateSlotRequest{
			TrainerID: 10,
			StartTime: base,
			EndTime:   base.Add(duration),
		})
		assert.NoError(t, err)
	}
}

func TestDeleteSlot(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		repo := &fakeSlotRepo{slots: map[int64]*domain.Slot{
			1: {ID: 1, TrainerID: 10, StartTime: now.Add(24 * time.Hour), EndTime: now.Add(25 * time.Hour)},
		}}
		svc := newTestService(repo, &fakeTrainerClient{}, now)

		err := svc.DeleteSlot(context.Background(), 10, 1)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, repo.deleted)
	})

	t.Run("booked slot cannot be deleted", func(t *testing.T) {
		repo := &fakeSlotRepo{slots: map[int64]*domain.Slot{
			1: {ID: 1, TrainerID: 10, Booked: true},
		}}
		svc := newTestService(repo, &fakeTrainerClient{}, now)

		err := svc.DeleteSlot(context.Background(), 10, 1)
		assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
	})

	t.Run("foreign slot access denied", func(t *testing.T) {
		repo := &fakeSlotRepo{slots: map[int64]*domain.Slot{
			1: {ID: 1, TrainerID: 11},
		}}
		svc := newTestService(repo, &fakeTrainerClient{}, now)

		err := svc.DeleteSlot(context.Background(), 10, 1)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing slot", func(t *testing.T) {
		svc := newTestService(&fakeSlotRepo{}, &fakeTrainerClient{}, now)

		err := svc.DeleteSlot(context.Background(), 10, 1)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}

func TestReleaseSlot(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		repo := &fakeSlotRepo{slots: map[int64]*domain.Slot{
			1: {ID: 1, TrainerID: 10, Booked: true},
		}}
		svc := newTestService(repo, &fakeTrainerClient{}, now)

		err := svc.ReleaseSlot(context.Background(), 10, 1)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, repo.released)
	})

	t.Run("free slot cannot be released", func(t *testing.T) {
		repo := &fakeSlotRepo{slots: map[int64]*domain.Slot{
			1: {ID: 1, TrainerID: 10, Booked: false},
		}}
		svc := newTestService(repo, &fakeTrainerClient{}, now)

		err := svc.ReleaseSlot(context.Background(), 10, 1)
		assert.ErrorIs(t, err, ErrSlotNotBooked)
	})
}
