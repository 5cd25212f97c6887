package models

import (
	"time"

	"github.com/m04kA/SMC-TrainerService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	ActorID int64  `json:"actorId"`
	Reason  string `json:"reason"`
}

// UpdateStatusRequest запрос тренера на изменение статуса бронирования
// Допустимые значения: confirmed, completed
type UpdateStatusRequest struct {
	TrainerID int64  `json:"trainerId"`
	Status    string `json:"status"`
}

// AddAdviceRequest запрос тренера на добавление рекомендации
type AddAdviceRequest struct {
	TrainerID int64    `json:"trainerId"`
	Title     string   `json:"title"`
	Content   []string `json:"content"`
}

// AddReviewRequest запрос пользователя на добавление отзыва
type AddReviewRequest struct {
	UserID  int64  `json:"userId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetTrainerBookingsRequest запрос на получение бронирований тренера
type GetTrainerBookingsRequest struct {
	TrainerID       int64      `json:"trainerId"`
	ActorID         int64      `json:"actorId"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive"`
}

// Response модели

// ReviewResponse отзыв пользователя
type ReviewResponse struct {
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdviceResponse рекомендация тренера
type AdviceResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   []string  `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookingResponse бронирование
type BookingResponse struct {
	ID         int64  `json:"id"`
	SlotID     int64  `json:"slotId"`
	TrainerID  int64  `json:"trainerId"`
	UserID     int64  `json:"userId"`
	LocationID int64  `json:"locationId"`

	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`

	Price  int64   `json:"price"`
	Note   *string `json:"note,omitempty"`
	Status string  `json:"status"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledBy        *string    `json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	Review *ReviewResponse  `json:"review,omitempty"`
	Advice []AdviceResponse `json:"advice,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует domain.Booking в response-модель
func FromDomainBooking(booking *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:                 booking.ID,
		SlotID:             booking.SlotID,
		TrainerID:          booking.TrainerID,
		UserID:             booking.UserID,
		LocationID:         booking.LocationID,
		StartTime:          booking.StartTime,
		EndTime:            booking.EndTime,
		Price:              booking.Price,
		Note:               booking.Note,
		Status:             string(booking.Status),
		CancellationReason: booking.CancellationReason,
		CancelledAt:        booking.CancelledAt,
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}

	if booking.CancelledBy != nil {
		by := string(*booking.CancelledBy)
		resp.CancelledBy = &by
	}

	if booking.Review != nil {
		resp.Review = &ReviewResponse{
			Rating:    booking.Review.Rating,
			Comment:   booking.Review.Comment,
			CreatedAt: booking.Review.CreatedAt,
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований в response-модель
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		result = append(result, *FromDomainBooking(booking))
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}

// FromDomainAdvice конвертирует domain.Advice в response-модель
func FromDomainAdvice(advice *domain.Advice) *AdviceResponse {
	return &AdviceResponse{
		ID:        advice.ID,
		Title:     advice.Title,
		Content:   advice.Content,
		CreatedAt: advice.CreatedAt,
	}
}

// FromDomainAdviceList конвертирует список рекомендаций в response-модели
func FromDomainAdviceList(advices []*domain.Advice) []AdviceResponse {
	result := make([]AdviceResponse, 0, len(advices))
	for _, advice := range advices {
		result = append(result, *FromDomainAdvice(advice))
	}
	return result
}
