package request

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=16,password"`
	Address  string `json:"address" validate:"required,max=400"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=60"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=16,password"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=400"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=USER OWNER ADMIN"`
}

// ListUsersRequest adalah query filter untuk GET /api/users (admin only)
type ListUsersRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	Role    *string `json:"role,omitempty" validate:"omitempty,oneof=USER OWNER ADMIN"`
}
