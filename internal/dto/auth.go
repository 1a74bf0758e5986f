package dto

import "github.com/sportsconnect/api/internal/model"

// RequestOTPRequest starts the email verification flow.
type RequestOTPRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required"`
}

type RequestOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// DevOTP is only populated in development mode.
	DevOTP string `json:"devOTP,omitempty"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type CheckUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

type SignupRequest struct {
	FullName string          `json:"fullName" binding:"required"`
	Username string          `json:"username" binding:"required,username"`
	Email    string          `json:"email" binding:"required,email"`
	Phone    string          `json:"phone"`
	Password string          `json:"password" binding:"required,min=6"`
	Avatar   string          `json:"avatar"`
	Location *model.Location `json:"location"`
	Sports   []string        `json:"sports" binding:"omitempty,dive,sport"`
	Bio      string          `json:"bio" binding:"max=500"`
}

// LoginRequest accepts a username or an email as the identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Token   string        `json:"token"`
	User    *UserResponse `json:"user"`
}
