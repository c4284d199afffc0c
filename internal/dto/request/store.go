package request

type CreateStoreRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=60"`
	Email   string  `json:"email" validate:"required,email"`
	Address string  `json:"address" validate:"required,max=400"`
	OwnerID *string `json:"owner_id,omitempty" validate:"omitempty,uuid4"`
}

// ListStoresFilter adalah query filter untuk GET /api/stores (public)
type ListStoresFilter struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}

type UpdateStoreRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=60"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=400"`
}
