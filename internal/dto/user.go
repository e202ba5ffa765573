package dto

import (
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
)

// CreateUserRequest defines the data for provisioning a user (admin action).
type CreateUserRequest struct {
	Name     string  `json:"name" binding:"required,notblank,max=100"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	Role     string  `json:"role" binding:"required,oneof=admin user"`
	Location string  `json:"location" binding:"required,notblank,max=200"`
	NIP      *string `json:"nip" binding:"omitempty,max=30"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,notblank,max=100"`
	Location *string `json:"location" binding:"omitempty,notblank,max=200"`
	NIP      *string `json:"nip" binding:"omitempty,max=30"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin user"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
