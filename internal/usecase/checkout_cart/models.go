package checkout_cart

import "time"

// Request модель запроса на оформление корзины
type Request struct {
	UserID     int64   // ID пользователя
	LocationID int64   // ID зала, где пройдут занятия
	Note       *string // Заметка, прикрепляемая к каждому бронированию (опционально)
}

// Response результат оформления корзины
// Оформление может завершиться частично: часть позиций становится
// бронированиями, остальные возвращаются с причинами отказа
type Response struct {
	Succeeded []BookingResult // Созданные бронирования
	Failed    []FailedItem    // Позиции, которые не удалось оформить
}

// BookingResult созданное бронирование
type BookingResult struct {
	BookingID int64     // ID бронирования
	ItemID    int64     // ID исходной позиции корзины
	SlotID    int64     // ID забронированного слота
	TrainerID int64     // ID тренера
	StartTime time.Time // Время начала занятия
	EndTime   time.Time // Время окончания занятия
	Price     int64     // Зафиксированная стоимость
	Status    string    // Статус бронирования
}

// FailedItem позиция корзины, которую не удалось оформить
type FailedItem struct {
	ItemID int64  // ID позиции корзины
	SlotID int64  // ID слота
	Reason string // Код причины отказа
}
