package add_advice

import (
	"github.com/m04kA/SMC-TrainerService/internal/service/bookings/models"
)

// AddAdviceRequest HTTP request model
type AddAdviceRequest struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *AddAdviceRequest) ToServiceRequest(trainerID int64) *models.AddAdviceRequest {
	return &models.AddAdviceRequest{
		TrainerID: trainerID,
		Title:     r.Title,
		Content:   r.Content,
	}
}
