package add_review

import (
	"github.com/m04kA/SMC-TrainerService/internal/service/bookings/models"
)

// AddReviewRequest HTTP request model
type AddReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *AddReviewRequest) ToServiceRequest(userID int64) *models.AddReviewRequest {
	return &models.AddReviewRequest{
		UserID:  userID,
		Rating:  r.Rating,
		Comment: r.Comment,
	}
}
