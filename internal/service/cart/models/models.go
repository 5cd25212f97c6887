package models

import (
	"time"

	"github.com/m04kA/SMC-TrainerService/internal/domain"
)

// AddItemRequest запрос на добавление слота в корзину
type AddItemRequest struct {
	UserID    int64 `json:"userId"`
	TrainerID int64 `json:"trainerId"`
	SlotID    int64 `json:"slotId"`
}

// CartItemResponse позиция корзины
type CartItemResponse struct {
	ID        int64     `json:"id"`
	TrainerID int64     `json:"trainerId"`
	SlotID    int64     `json:"slotId"`
	SlotStart time.Time `json:"slotStart"`
	SlotEnd   time.Time `json:"slotEnd"`
	Price     int64     `json:"price"`
	AddedAt   time.Time `json:"addedAt"`
}

// CartResponse корзина пользователя
// TotalPrice носит справочный характер: итоговые цены фиксируются при оформлении
type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalPrice int64              `json:"totalPrice"`
}

// FromDomainCartItem конвертирует domain.CartItem в response-модель
func FromDomainCartItem(item *domain.CartItem) *CartItemResponse {
	return &CartItemResponse{
		ID:        item.ID,
		TrainerID: item.TrainerID,
		SlotID:    item.SlotID,
		SlotStart: item.SlotStart,
		SlotEnd:   item.SlotEnd,
		Price:     item.Price,
		AddedAt:   item.AddedAt,
	}
}

// FromDomainCart конвертирует позиции корзины в response-модель
func FromDomainCart(items []*domain.CartItem) *CartResponse {
	result := make([]CartItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, *FromDomainCartItem(item))
	}
	return &CartResponse{
		Items:      result,
		TotalPrice: domain.TotalPrice(items),
	}
}
