package models

import (
	"time"

	"github.com/m04kA/SMC-TrainerService/internal/domain"
)

// CreateSlotRequest запрос тренера на создание слота
type CreateSlotRequest struct {
	TrainerID int64     `json:"trainerId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// SlotResponse слот расписания
type SlotResponse struct {
	ID        int64     `json:"id"`
	TrainerID int64     `json:"trainerId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Booked    bool      `json:"booked"`
	CreatedAt time.Time `json:"createdAt"`
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// FromDomainSlot конвертирует domain.Slot в response-модель
func FromDomainSlot(slot *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:        slot.ID,
		TrainerID: slot.TrainerID,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Booked:    slot.Booked,
		CreatedAt: slot.CreatedAt,
	}
}

// FromDomainSlotList конвертирует список слотов в response-модель
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, *FromDomainSlot(slot))
	}
	return &SlotListResponse{
		Slots: result,
		Total: len(result),
	}
}
