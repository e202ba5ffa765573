package dto

import "github.com/SscSPs/stock_opname_app/internal/core/domain"

type UserResponse struct {
	UserID   string  `json:"userID"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	Location string  `json:"location"`
	NIP      *string `json:"nip,omitempty"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:   user.UserID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     string(user.Role),
		Location: user.Location,
		NIP:      user.NIP,
	}
}
