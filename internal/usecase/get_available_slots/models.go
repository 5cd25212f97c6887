package get_available_slots

import "time"

// Request модель запроса на получение свободных слотов тренера
type Request struct {
	TrainerID int64      // ID тренера
	Date      *time.Time // Опциональная дата (без времени); nil - все будущие слоты
}

// Response модель ответа со списком свободных слотов
type Response struct {
	TrainerID int64      // ID тренера
	Date      *time.Time // Дата, на которую запрашивались слоты
	Slots     []Slot     // Свободные слоты, отсортированные по времени начала
}

// Slot модель свободного слота
type Slot struct {
	ID              int64     // ID слота
	StartTime       time.Time // Время начала
	EndTime         time.Time // Время окончания
	DurationMinutes int       // Длительность в минутах
	Price           int64     // Стоимость занятия; 0, если ставка тренера недоступна
}
