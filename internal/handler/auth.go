package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sportsconnect/api/internal/constants"
	"github.com/sportsconnect/api/internal/dto"
	apperrors "github.com/sportsconnect/api/internal/errors"
	"github.com/sportsconnect/api/internal/middleware"
	"github.com/sportsconnect/api/internal/service"
	"github.com/sportsconnect/api/internal/validation"
)

type AuthHandler struct {
	authService *service.AuthService
	otpService  *service.OTPService
}

func NewAuthHandler(authService *service.AuthService, otpService *service.OTPService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		otpService:  otpService,
	}
}

func bindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest,
		constants.BuildErrorResponse("Invalid request format", validation.MessagesFor(err)))
}

func domainError(c *gin.Context, err error) {
	c.JSON(apperrors.ToHTTPStatus(err),
		constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
}

// RequestOTP issues a verification code for the given email.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req dto.RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	devOTP, err := h.otpService.RequestOTP(c.Request.Context(), req.Email, req.FullName)
	if err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RequestOTPResponse{
		Success: true,
		Message: "OTP sent to your email",
		DevOTP:  devOTP,
	})
}

// VerifyOTP checks a submitted code.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if err := h.otpService.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Email verified successfully"))
}

// CheckUsername reports availability of a username.
func (h *AuthHandler) CheckUsername(c *gin.Context) {
	var req dto.CheckUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	message, err := h.authService.CheckUsername(c.Request.Context(), req.Username)
	if err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(message))
}

// Signup creates an account and opens a session.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	token, user, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Success: true,
		Message: "Account created successfully",
		Token:   token,
		User:    user,
	})
}

// Login authenticates by username or email.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// Logout acknowledges the client-side session teardown. Tokens are
// self-contained; nothing is revoked server-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgLoggedOut))
}

// Me returns the bearer's own record.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("", gin.H{"user": user}))
}
