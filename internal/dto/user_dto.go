package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"project-hub-api/internal/domain"
)

// UpdateUserRequest is the payload for updating the caller's profile
// @Description Profile update request, all fields optional
type UpdateUserRequest struct {
	Name       *string  `json:"name" binding:"omitempty,max=255"`
	Avatar     *string  `json:"avatar"`
	Role       *string  `json:"role"`
	Department *string  `json:"department"`
	Team       *string  `json:"team"`
	Location   *string  `json:"location"`
	Phone      *string  `json:"phone"`
	Bio        *string  `json:"bio"`
	Skills     []string `json:"skills"`
}

// UserResponse is the view model for a user profile
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Avatar     string    `json:"avatar"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	Team       string    `json:"team"`
	Location   string    `json:"location"`
	Phone      string    `json:"phone"`
	Bio        string    `json:"bio"`
	Skills     []string  `json:"skills"`
	JoinedDate time.Time `json:"joinedDate"`
	LastActive time.Time `json:"lastActive"`
}

// ToUserResponse maps a domain user to its view model
func ToUserResponse(u *domain.User) UserResponse {
	var skills []string
	if len(u.Skills) > 0 {
		_ = json.Unmarshal(u.Skills, &skills)
	}
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Avatar:     u.Avatar,
		Role:       u.Role,
		Department: u.Department,
		Team:       u.Team,
		Location:   u.Location,
		Phone:      u.Phone,
		Bio:        u.Bio,
		Skills:     skills,
		JoinedDate: u.JoinedDate,
		LastActive: u.LastActive,
	}
}
