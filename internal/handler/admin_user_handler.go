package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/milkyano-media/aspire-backend/internal/middleware"
	"github.com/milkyano-media/aspire-backend/internal/model"
	"github.com/milkyano-media/aspire-backend/internal/response"
	"github.com/milkyano-media/aspire-backend/internal/service"
	"github.com/milkyano-media/aspire-backend/internal/validator"
)

type AdminUserHandler struct {
	service *service.AdminUserService
}

func NewAdminUserHandler(service *service.AdminUserService) *AdminUserHandler {
	return &AdminUserHandler{service: service}
}

// List godoc
// GET /api/v1/admin/users?role_id=&page=&per_page=
func (h *AdminUserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	roleID, _ := strconv.Atoi(c.Query("role_id"))

	admins, total, err := h.service.ListAdmins(c.Request.Context(), roleID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"admins": admins}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	})
}

// Create godoc
// POST /api/v1/admin/users
func (h *AdminUserHandler) Create(c *gin.Context) {
	var req model.CreateAdminRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	admin, err := h.service.CreateAdmin(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyUsed) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"admin": admin})
}

// Update godoc
// PUT /api/v1/admin/users/:id
func (h *AdminUserHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateAdminRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	admin, err := h.service.UpdateAdmin(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrEmailAlreadyUsed):
			response.Fail(c, http.StatusConflict, response.ErrConflict)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"admin": admin})
}

// Delete godoc
// DELETE /api/v1/admin/users/:id
func (h *AdminUserHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	// An admin cannot delete their own account.
	claims := middleware.GetClaims(c)
	if claims != nil && claims.UserID == id {
		response.Fail(c, http.StatusForbidden, response.ErrActionForbidden)
		return
	}

	if err := h.service.DeleteAdmin(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "admin deleted successfully"})
}
