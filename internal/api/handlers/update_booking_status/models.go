package update_booking_status

import (
	"github.com/m04kA/SMC-TrainerService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
// Допустимые значения status: confirmed, completed
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(trainerID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		TrainerID: trainerID,
		Status:    r.Status,
	}
}
