package domain

// Default configuration values
const (
	DefaultCancellationWindowHours = 24
	DefaultReleaseSlotOnCancel     = false
)

// Business validation constants
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 480 // 8 hours

	MinRating = 1
	MaxRating = 5

	MaxNoteLength               = 500
	MaxCancellationReasonLength = 500
	MaxAdviceTitleLength        = 200
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, при которых бронирование занимает время слота
// Используется при проверке пересечений
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
