package trainerservice

// Trainer модель тренера из TrainerService
type Trainer struct {
	ID             int64   `json:"id"`
	FullName       string  `json:"full_name"`
	Specialization string  `json:"specialization"`
	HourlyRate     int64   `json:"hourly_rate"` // Ставка за сессию в минорных единицах валюты
	Active         bool    `json:"active"`
	LocationIDs    []int64 `json:"location_ids"`
}

// ErrorResponse модель ошибки от TrainerService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
