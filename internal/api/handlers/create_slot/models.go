package create_slot

import (
	"time"

	"github.com/m04kA/SMC-TrainerService/internal/service/schedule/models"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateSlotRequest) ToServiceRequest(trainerID int64) *models.CreateSlotRequest {
	return &models.CreateSlotRequest{
		TrainerID: trainerID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}
