package domain

import "time"

// CartItem кандидат на бронирование в корзине пользователя
// Корзина никого ни к чему не обязывает: слот не резервируется до оформления
type CartItem struct {
	ID        int64
	TrainerID int64
	SlotID    int64
	SlotStart time.Time
	SlotEnd   time.Time
	Price     int64 // Цена на момент добавления, только для отображения
	AddedAt   time.Time
}

// CartItemKey ключ дедупликации позиций корзины
type CartItemKey struct {
	TrainerID int64
	SlotStart time.Time
	SlotEnd   time.Time
}

// Key возвращает ключ дедупликации позиции
func (i *CartItem) Key() CartItemKey {
	return CartItemKey{
		TrainerID: i.TrainerID,
		SlotStart: i.SlotStart,
		SlotEnd:   i.SlotEnd,
	}
}

// TotalPrice суммарная цена позиций корзины (только для отображения)
func TotalPrice(items []*CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Price
	}
	return total
}
