package domain

import "time"

// Slot represents a trainer's availability slot
// Created by the trainer, consumed exactly once by a booking
type Slot struct {
	ID        int64
	TrainerID int64
	StartTime time.Time
	EndTime   time.Time
	Booked    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration returns the slot length
func (s *Slot) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// IsPast returns true if the slot has already started
func (s *Slot) IsPast(now time.Time) bool {
	return !s.StartTime.After(now)
}

// Overlaps reports whether the slot overlaps the given range
// Touching boundaries (end == start) do not count as overlap
func (s *Slot) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && s.EndTime.After(start)
}

// TrainerSlotsFilter фильтр для получения слотов тренера
type TrainerSlotsFilter struct {
	TrainerID  int64      // Обязательный параметр
	Date       *time.Time // Конкретная дата (опционально)
	OnlyFree   bool       // Только незабронированные слоты
	OnlyFuture bool       // Только слоты, которые ещё не начались
	Now        time.Time  // Текущее время для фильтра OnlyFuture
}
