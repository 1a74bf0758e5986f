package dto

import (
	"time"

	"github.com/sportsconnect/api/internal/model"
)

// UserResponse is the sanitized user shape for the owner and admin views.
// There is deliberately no password field, so no code path can leak the hash.
type UserResponse struct {
	ID        uint            `json:"id"`
	FullName  string          `json:"fullName"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone,omitempty"`
	Avatar    string          `json:"avatar"`
	Location  *model.Location `json:"location,omitempty"`
	Sports    []string        `json:"sports"`
	Bio       string          `json:"bio,omitempty"`
	IsActive  bool            `json:"isActive"`
	IsAdmin   bool            `json:"isAdmin"`
	IsOnline  bool            `json:"isOnline"`
	LastLogin time.Time       `json:"lastLogin"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// PublicUserResponse is the anonymous view: no email, no phone.
type PublicUserResponse struct {
	ID        uint            `json:"id"`
	FullName  string          `json:"fullName"`
	Username  string          `json:"username"`
	Avatar    string          `json:"avatar"`
	Location  *model.Location `json:"location,omitempty"`
	Sports    []string        `json:"sports"`
	Bio       string          `json:"bio,omitempty"`
	IsActive  bool            `json:"isActive"`
	IsOnline  bool            `json:"isOnline"`
	CreatedAt time.Time       `json:"createdAt"`
}

// UpdateProfileRequest updates only the provided fields. Pointers
// distinguish "absent" from "set to zero".
type UpdateProfileRequest struct {
	FullName *string         `json:"fullName"`
	Phone    *string         `json:"phone"`
	Avatar   *string         `json:"avatar"`
	Location *model.Location `json:"location"`
	Sports   *[]string       `json:"sports" binding:"omitempty,dive,sport"`
	Bio      *string         `json:"bio" binding:"omitempty,max=500"`
}

func locationOrNil(u *model.User) *model.Location {
	loc := u.Location.Data()
	if loc.City == "" && loc.State == "" && loc.Country == "" && loc.Coordinates == nil {
		return nil
	}
	return &loc
}

func sportsOrEmpty(u *model.User) []string {
	if u.Sports == nil {
		return []string{}
	}
	return []string(u.Sports)
}

// NewUserResponse maps a stored user to the sanitized owner/admin view.
func NewUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Avatar:    u.Avatar,
		Location:  locationOrNil(u),
		Sports:    sportsOrEmpty(u),
		Bio:       u.Bio,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		IsOnline:  u.IsOnline(),
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewPublicUserResponse maps a stored user to the public view.
func NewPublicUserResponse(u *model.User) *PublicUserResponse {
	return &PublicUserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Username:  u.Username,
		Avatar:    u.Avatar,
		Location:  locationOrNil(u),
		Sports:    sportsOrEmpty(u),
		Bio:       u.Bio,
		IsActive:  u.IsActive,
		IsOnline:  u.IsOnline(),
		CreatedAt: u.CreatedAt,
	}
}

// NewUserResponseList maps a page of users.
func NewUserResponseList(users []model.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
