package dto

import (
	"time"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
)

// CreateUserRequest represents the API request for an operator creating
// an account, optionally funded with an opening balance
type CreateUserRequest struct {
	Username       string `json:"username" binding:"required,min=3,max=80"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Gender         string `json:"gender" binding:"required,oneof=male female"`
	IsAdmin        bool   `json:"isAdmin"`
	InitialBalance string `json:"initialBalance"`
}

// DepositRequest represents the API request for adding funds to a balance
type DepositRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// UserResponse represents the API response for a single user
type UserResponse struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserListResponse represents the API response for listing users
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}

// BalanceResponse represents the API response for a user's balance after
// a deposit
type BalanceResponse struct {
	UserID      uint64              `json:"userId"`
	Balance     string              `json:"balance"`
	Transaction TransactionResponse `json:"transaction"`
}

// ToUserResponse converts a user entity to its API representation
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Gender:    u.Gender,
		AvatarURL: u.AvatarURL,
		IsAdmin:   u.IsAdmin,
		Balance:   u.Balance(),
		CreatedAt: u.CreatedAt,
	}
}

// ToUserListResponse converts user entities to a list response
func ToUserListResponse(users []*entity.User) UserListResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return UserListResponse{Users: out, Count: len(out)}
}
