package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/movalearn/movalearn-backend/internal/http/response"
	"github.com/movalearn/movalearn-backend/internal/services"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (ah *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	result, err := ah.adminService.ListUsers(c.Request.Context(), page, size)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (ah *AdminHandler) UpdateUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	var req struct {
		Name          *string `json:"name"`
		Email         *string `json:"email"`
		Role          *string `json:"role"`
		Level         *string `json:"level"`
		XP            *int    `json:"xp"`
		Streak        *int    `json:"streak"`
		EmailVerified *bool   `json:"email_verified"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := ah.adminService.UpdateUser(c.Request.Context(), userID, services.AdminUserUpdate{
		Name:          req.Name,
		Email:         req.Email,
		Role:          req.Role,
		Level:         req.Level,
		XP:            req.XP,
		Streak:        req.Streak,
		EmailVerified: req.EmailVerified,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, user.Public())
}
