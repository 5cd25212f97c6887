package add_cart_item

import (
	"github.com/m04kA/SMC-TrainerService/internal/service/cart/models"
)

// AddCartItemRequest HTTP request model
type AddCartItemRequest struct {
	TrainerID int64 `json:"trainerId"`
	SlotID    int64 `json:"slotId"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *AddCartItemRequest) ToServiceRequest(userID int64) *models.AddItemRequest {
	return &models.AddItemRequest{
		UserID:    userID,
		TrainerID: r.TrainerID,
		SlotID:    r.SlotID,
	}
}
