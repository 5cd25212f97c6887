package cartstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerService/internal/domain"
)

func newItem(trainerID, slotID int64, start time.Time) *domain.CartItem {
	return &domain.CartItem{
		TrainerID: trainerID,
		SlotID:    slotID,
		SlotStart: start,
		SlotEnd:   start.Add(time.Hour),
		Price:     1000_00,
	}
}

func TestStore_AddAssignsIDs(t *testing.T) {
	store := NewStore()
	start := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

	first, err := store.Add(1, newItem(10, 100, start))
	require.NoError(t, err)
	second, err := store.Add(1, newItem(10, 101, start.Add(2*time.Hour)))
	require.NoError(t, err)

	assert.NotZero(t, first.ID)
	assert.NotZero(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestStore_AddDuplicateSlot(t *testing.T) {
	store := NewStore()
	start := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

	_, err := store.Add(1, newItem(10, 100, start))
	require.NoError(t, err)

	// Тот же слот повторно
	_, err = store.Add(1, newItem(10, 100, start))
	assert.ErrorIs(t, err, ErrDuplicateItem)

	// Другой слот, но тот же тренер и то же время
	_, err = store.Add(1, newItem(10, 200, start))
	assert.ErrorIs(t, err, ErrDuplicateItem)

	// В чужой корзине тот же слот не является дубликатом
	_, err = store.Add(2, newItem(10, 100, start))
	assert.NoError(t, err)
}

func TestStore_ListReturnsCopies(t *testing.T) {
	store := NewStore()
	start := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

	added, err := store.Add(1, newItem(10, 100, start))
	require.NoError(t, err)

	items := store.List(1)
	require.Len(t, items, 1)

	// Мутация возвращенной копии не должна менять хранилище
	items[0].Price = 9999
	fresh := store.List(1)
	assert.Equal(t, int64(1000_00), fresh[0].Price)
	assert.Equal(t, added.ID, fresh[0].ID)
}

func TestStore_Remove(t *testing.T) {
	store := NewStore()
	start := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

	item, err := store.Add(1, newItem(10, 100, start))
	require.NoError(t, err)

	store.Remove(1, item.ID)
	assert.Empty(t, store.List(1))

	// Повторное удаление не паникует и не ошибается
	store.Remove(1, item.ID)
	store.Remove(1, 9999)
}

func TestStore_RemoveMany(t *testing.T) {
	store := NewStore()
	start := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

	first, _ := store.Add(1, newItem(10, 100, start))
	second, _ := store.Add(1, newItem(10, 101, start.Add(2*time.Hour)))
	third, _ := store.Add(1, newItem(11, 102, start.Add(4*time.Hour)))

	store.RemoveMany(1, []int64{first.ID, third.ID})

	items := store.List(1)
	require.Len(t, items, 1)
	assert.Equal(t, second.ID, items[0].ID)
}

func TestStore_Clear(t *testing.T) {
	store := NewStore()
	start := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

	_, err := store.Add(1, newItem(10, 100, start))
	require.NoError(t, err)

	store.Clear(1)
	assert.Empty(t, store.List(1))

	// Очистка пустой корзины безопасна
	store.Clear(1)
	store.Clear(42)
}
