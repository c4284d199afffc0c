package response

import (
	"time"

	"store-ratings/internal/data/entity"
)

type StoreResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	AverageRating float64   `json:"average_rating"`
	OwnerID       *string   `json:"owner_id,omitempty"`
	OwnerName     string    `json:"owner_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type StoreRatingStats struct {
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
}

// Helper converter
func StoreToResponse(store *entity.Store, ownerName string) StoreResponse {
	resp := StoreResponse{
		ID:            store.ID.String(),
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		AverageRating: store.AverageRating,
		OwnerName:     ownerName,
		CreatedAt:     store.CreatedAt,
	}

	if store.OwnerID != nil {
		ownerID := store.OwnerID.String()
		resp.OwnerID = &ownerID
	}

	return resp
}
