package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sportsconnect/api/internal/constants"
	"github.com/sportsconnect/api/internal/dto"
	"github.com/sportsconnect/api/internal/middleware"
	"github.com/sportsconnect/api/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid user id", nil))
		return 0, false
	}
	return uint(id), true
}

// GetProfile returns the caller's own record.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("", gin.H{"user": user}))
}

// UpdateProfile merges the provided fields into the caller's record.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("Profile updated successfully", gin.H{"user": user}))
}

// GetPublicUser returns the anonymous view of any user.
func (h *UserHandler) GetPublicUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.GetPublicProfile(c.Request.Context(), id)
	if err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("", gin.H{"user": user}))
}
