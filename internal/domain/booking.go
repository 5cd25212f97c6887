package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// CancelledBy идентифицирует инициатора отмены
type CancelledBy string

const (
	CancelledByUser    CancelledBy = "user"
	CancelledByTrainer CancelledBy = "trainer"
)

// Booking represents a reserved trainer slot in the system
type Booking struct {
	ID         int64
	SlotID     int64 // Потребленный слот, неизменяем после создания
	TrainerID  int64
	UserID     int64
	LocationID int64

	// Denormalized from the slot for history and guard checks
	StartTime time.Time
	EndTime   time.Time

	Price  int64 // Фиксируется на момент оформления, в минорных единицах валюты
	Note   *string
	Status BookingStatus

	CancellationReason *string
	CancelledBy        *CancelledBy
	CancelledAt        *time.Time

	Review *Review

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Review post-session rating left by the booking's user
type Review struct {
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// Advice a trainer's note attached to a completed booking
type Advice struct {
	ID        int64
	BookingID int64
	Title     string
	Content   []string
	CreatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot's time range
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true if the booking reached an immutable state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// SessionOver returns true once the booked session's end time has passed
func (b *Booking) SessionOver(now time.Time) bool {
	return !now.Before(b.EndTime)
}

// WithinCancellationWindow returns true while cancellation is still permitted
func (b *Booking) WithinCancellationWindow(now time.Time, window time.Duration) bool {
	return b.StartTime.Sub(now) > window
}

// UserBookingsFilter фильтр для получения бронирований пользователя
type UserBookingsFilter struct {
	UserID int64
	Status *BookingStatus
}

// TrainerBookingsFilter фильтр для получения бронирований тренера
type TrainerBookingsFilter struct {
	TrainerID       int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные бронирования
}
