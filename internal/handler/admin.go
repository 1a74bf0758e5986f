package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sportsconnect/api/internal/constants"
	"github.com/sportsconnect/api/internal/dto"
	"github.com/sportsconnect/api/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Login checks the static operator credentials.
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	token, err := h.adminService.Login(&req)
	if err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AdminLoginResponse{
		Success: true,
		Message: "Admin login successful",
		Token:   token,
		Admin: dto.AdminInfo{
			Username: req.Username,
			Role:     "admin",
		},
	})
}

// Stats returns the dashboard aggregates.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("", gin.H{"stats": stats}))
}

// ListUsers returns one page of users with search, filter and sort applied.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := constants.ParseListParams(c)

	resp, err := h.adminService.ListUsers(c.Request.Context(), params)
	if err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("", gin.H{
		"users":      resp.Users,
		"pagination": resp.Pagination,
	}))
}

// GetUser returns one user by id.
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.adminService.GetUser(c.Request.Context(), id)
	if err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("", gin.H{"user": user}))
}

// UpdateUser applies a partial update, including the activation toggle.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	user, err := h.adminService.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("User updated successfully", gin.H{"user": user}))
}

// DeleteUser removes a user permanently.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), id); err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("User deleted successfully"))
}

// Export streams the full user list as a JSON or CSV attachment.
func (h *AdminHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", service.ExportFormatJSON)

	export, err := h.adminService.ExportUsers(c.Request.Context(), format)
	if err != nil {
		domainError(c, err)
		return
	}

	c.Header(constants.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Data)
}
