package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milkyano-media/aspire-backend/internal/middleware"
	"github.com/milkyano-media/aspire-backend/internal/model"
	"github.com/milkyano-media/aspire-backend/internal/response"
	"github.com/milkyano-media/aspire-backend/internal/service"
	"github.com/milkyano-media/aspire-backend/internal/validator"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	authService  *service.AuthService
	adminService *service.AdminService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, adminService *service.AdminService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		adminService: adminService,
	}
}

// Login godoc
// POST /api/v1/auth/login
// Validates email + password, returns JWT with permissions.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.AdminLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	admin, err := h.adminService.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	if err := h.authService.CheckPassword(admin.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	permissions, err := h.adminService.GetPermissions(c.Request.Context(), admin.RoleID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	token, err := h.authService.GenerateToken(admin.ID, admin.RoleID, permissions)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{
			"id":        admin.ID,
			"email":     admin.Email,
			"name":      admin.Name,
			"role_id":   admin.RoleID,
			"role_name": admin.RoleName,
		},
		"permissions": permissions,
	})
}

// Logout godoc
// POST /api/v1/auth/logout
// Revokes the presented token until its natural expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.RevokeToken(c.Request.Context(), claims); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// GetProfile godoc
// GET /api/v1/auth/me
// Returns the profile of the currently authenticated admin.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	admin, err := h.adminService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	permissions, err := h.adminService.GetPermissions(c.Request.Context(), admin.RoleID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"admin": gin.H{
			"id":        admin.ID,
			"email":     admin.Email,
			"name":      admin.Name,
			"role_id":   admin.RoleID,
			"role_name": admin.RoleName,
		},
		"permissions": permissions,
	})
}
