package response

import (
	"time"

	"store-ratings/internal/data/entity"
)

type RatingResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	StoreID   string    `json:"store_id"`
	StoreName string    `json:"store_name,omitempty"`
	Value     int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SubmitRatingResponse struct {
	Success bool `json:"success"`
}

// Helper converter
func RatingToResponse(rating *entity.Rating, userName, storeName string) RatingResponse {
	return RatingResponse{
		ID:        rating.ID.String(),
		UserID:    rating.UserID.String(),
		UserName:  userName,
		StoreID:   rating.StoreID.String(),
		StoreName: storeName,
		Value:     rating.Value,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}
