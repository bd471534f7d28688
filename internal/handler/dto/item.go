package dto

import (
	"github.com/foodwise/foodwise/internal/model"
)

// CreateItemRequest represents the request body for creating an inventory
// item. Pointer fields distinguish missing keys from zero values.
type CreateItemRequest struct {
	ID         *int64      `json:"id"`
	Name       string      `json:"name"`
	Quantity   *int        `json:"quantity"`
	ExpiryDate *model.Date `json:"expiry_date"`
}

// UpdateItemRequest represents the request body for replacing an item.
type UpdateItemRequest struct {
	Name       string      `json:"name"`
	Quantity   *int        `json:"quantity"`
	ExpiryDate *model.Date `json:"expiry_date"`
}

// ItemResponse represents an inventory item in API responses.
type ItemResponse struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Quantity   int        `json:"quantity"`
	ExpiryDate model.Date `json:"expiry_date"`
}

// ToItemResponse converts an Item model to ItemResponse DTO.
func ToItemResponse(item *model.Item) *ItemResponse {
	return &ItemResponse{
		ID:         item.ID,
		Name:       item.Name,
		Quantity:   item.Quantity,
		ExpiryDate: item.ExpiryDate,
	}
}

// ToItemListResponse converts a slice of Item models to response DTOs.
func ToItemListResponse(items []*model.Item) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i, item := range items {
		responses[i] = *ToItemResponse(item)
	}
	return responses
}
