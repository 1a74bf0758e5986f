package dto

import "github.com/sportsconnect/api/internal/model"

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminInfo struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type AdminLoginResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Token   string    `json:"token"`
	Admin   AdminInfo `json:"admin"`
}

// StatsResponse is the dashboard aggregate block.
type StatsResponse struct {
	TotalUsers       int64 `json:"totalUsers"`
	ActiveUsers      int64 `json:"activeUsers"`
	InactiveUsers    int64 `json:"inactiveUsers"`
	OnlineUsers      int64 `json:"onlineUsers"`
	NewUsersToday    int64 `json:"newUsersToday"`
	NewUsersThisWeek int64 `json:"newUsersThisWeek"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type ListUsersResponse struct {
	Users      []*UserResponse `json:"users"`
	Pagination Pagination      `json:"pagination"`
}

// AdminUpdateUserRequest is a partial update plus the explicit
// activation toggle.
type AdminUpdateUserRequest struct {
	FullName *string         `json:"fullName"`
	Phone    *string         `json:"phone"`
	Avatar   *string         `json:"avatar"`
	Location *model.Location `json:"location"`
	Sports   *[]string       `json:"sports" binding:"omitempty,dive,sport"`
	Bio      *string         `json:"bio" binding:"omitempty,max=500"`
	IsActive *bool           `json:"isActive"`
	IsAdmin  *bool           `json:"isAdmin"`
}
