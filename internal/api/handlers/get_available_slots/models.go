package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TrainerService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-TrainerService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель свободного слота
type SlotResponse struct {
	ID              int64     `json:"id"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           int64     `json:"price"`
}

// Response HTTP модель ответа
type Response struct {
	TrainerID int64          `json:"trainerId"`
	Date      *string        `json:"date,omitempty"`
	Slots     []SlotResponse `json:"slots"`
}

// ToUseCaseRequest формирует запрос к use case, парся опциональную дату
func ToUseCaseRequest(trainerID int64, dateStr string) (*getAvailableSlots.Request, error) {
	req := &getAvailableSlots.Request{
		TrainerID: trainerID,
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(result *getAvailableSlots.Response) *Response {
	slots := make([]SlotResponse, 0, len(result.Slots))
	for _, slot := range result.Slots {
		slots = append(slots, SlotResponse{
			ID:              slot.ID,
			StartTime:       slot.StartTime,
			EndTime:         slot.EndTime,
			DurationMinutes: slot.DurationMinutes,
			Price:           slot.Price,
		})
	}

	resp := &Response{
		TrainerID: result.TrainerID,
		Slots:     slots,
	}
	if result.Date != nil {
		formatted := result.Date.Format(domain.DateFormat)
		resp.Date = &formatted
	}
	return resp
}
