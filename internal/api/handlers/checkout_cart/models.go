package checkout_cart

import (
	"time"

	checkoutCart "github.com/m04kA/SMC-TrainerService/internal/usecase/checkout_cart"
)

// CheckoutRequest HTTP request model
type CheckoutRequest struct {
	LocationID int64   `json:"locationId"`
	Note       *string `json:"note,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CheckoutRequest) ToUseCaseRequest(userID int64) *checkoutCart.Request {
	return &checkoutCart.Request{
		UserID:     userID,
		LocationID: r.LocationID,
		Note:       r.Note,
	}
}

// BookingResultResponse созданное бронирование
type BookingResultResponse struct {
	BookingID int64     `json:"bookingId"`
	ItemID    int64     `json:"itemId"`
	SlotID    int64     `json:"slotId"`
	TrainerID int64     `json:"trainerId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Price     int64     `json:"price"`
	Status    string    `json:"status"`
}

// FailedItemResponse позиция, которую не удалось оформить
type FailedItemResponse struct {
	ItemID int64  `json:"itemId"`
	SlotID int64  `json:"slotId"`
	Reason string `json:"reason"`
}

// Response HTTP модель результата оформления
type Response struct {
	Succeeded []BookingResultResponse `json:"succeeded"`
	Failed    []FailedItemResponse    `json:"failed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(result *checkoutCart.Response) *Response {
	succeeded := make([]BookingResultResponse, 0, len(result.Succeeded))
	for _, booking := range result.Succeeded {
		succeeded = append(succeeded, BookingResultResponse{
			BookingID: booking.BookingID,
			ItemID:    booking.ItemID,
			SlotID:    booking.SlotID,
			TrainerID: booking.TrainerID,
			StartTime: booking.StartTime,
			EndTime:   booking.EndTime,
			Price:     booking.Price,
			Status:    booking.Status,
		})
	}

	failed := make([]FailedItemResponse, 0, len(result.Failed))
	for _, item := range result.Failed {
		failed = append(failed, FailedItemResponse{
			ItemID: item.ItemID,
			SlotID: item.SlotID,
			Reason: item.Reason,
		})
	}

	return &Response{
		Succeeded: succeeded,
		Failed:    failed,
	}
}
