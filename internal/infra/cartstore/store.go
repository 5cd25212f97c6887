package cartstore

import (
	"sync"

	"github.com/m04kA/SMC-TrainerService/internal/domain"
)

// Store потокобезопасное in-memory хранилище корзин, по одной на пользователя
// Корзина эфемерна: не переживает рестарт сервиса и не является резервацией слота
// Доступность слотов перепроверяется при оформлении
type Store struct {
	mu         sync.Mutex
	carts      map[int64][]*domain.CartItem
	nextItemID int64
}

// NewStore создает новое хранилище корзин
func NewStore() *Store {
	return &Store{
		carts: make(map[int64][]*domain.CartItem),
	}
}

// Add добавляет позицию в корзину пользователя
// Повторное добавление того же слота (по id слота или по ключу
// тренер+время) возвращает ErrDuplicateItem, корзина не меняется
func (s *Store) Add(userID int64, item *domain.CartItem) (*domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := item.Key()
	for _, existing := range s.carts[userID] {
		if existing.SlotID == item.SlotID || existing.Key() == key {
			return nil, ErrDuplicateItem
		}
	}

	s.nextItemID++
	stored := *item
	stored.ID = s.nextItemID
	s.carts[userID] = append(s.carts[userID], &stored)

	result := stored
	return &result, nil
}

// Remove удаляет позицию из корзины по id
// Отсутствующая позиция не является ошибкой (идемпотентность)
func (s *Store) Remove(userID, itemID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	for i, item := range items {
		if item.ID == itemID {
			s.carts[userID] = append(items[:i], items[i+1:]...)
			return
		}
	}
}

// RemoveMany удаляет набор позиций из корзины пользователя
// Используется после оформления для удаления успешно забронированных позиций
func (s *Store) RemoveMany(userID int64, itemIDs []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	remove := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		remove[id] = true
	}

	items := s.carts[userID]
	kept := items[:0]
	for _, item := range items {
		if !remove[item.ID] {
			kept = append(kept, item)
		}
	}
	s.carts[userID] = kept
}

// List возвращает копию позиций корзины пользователя в порядке добавления
func (s *Store) List(userID int64) []*domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	result := make([]*domain.CartItem, 0, len(items))
	for _, item := range items {
		copied := *item
		result = append(result, &copied)
	}
	return result
}

// Clear полностью очищает корзину пользователя
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
}
