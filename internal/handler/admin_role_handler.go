package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/milkyano-media/aspire-backend/internal/model"
	"github.com/milkyano-media/aspire-backend/internal/response"
	"github.com/milkyano-media/aspire-backend/internal/service"
	"github.com/milkyano-media/aspire-backend/internal/validator"
)

type AdminRoleHandler struct {
	service *service.AdminRoleService
}

func NewAdminRoleHandler(service *service.AdminRoleService) *AdminRoleHandler {
	return &AdminRoleHandler{service: service}
}

// List godoc
// GET /api/v1/admin/roles
func (h *AdminRoleHandler) List(c *gin.Context) {
	roles, err := h.service.ListRoles(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if roles == nil {
		roles = []model.RoleWithPermissions{}
	}

	response.Success(c, http.StatusOK, gin.H{"roles": roles})
}

// ListForSelection godoc
// GET /api/v1/admin/roles/selection
// Lightweight role list for populating dropdowns.
func (h *AdminRoleHandler) ListForSelection(c *gin.Context) {
	roles, err := h.service.ListRolesForSelection(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if roles == nil {
		roles = []model.Role{}
	}

	response.Success(c, http.StatusOK, gin.H{"roles": roles})
}

// ListPermissions godoc
// GET /api/v1/admin/roles/permissions
func (h *AdminRoleHandler) ListPermissions(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"permissions": h.service.GetAllPermissions()})
}

// Get godoc
// GET /api/v1/admin/roles/:id
func (h *AdminRoleHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	role, err := h.service.GetRole(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"role": role})
}

// Create godoc
// POST /api/v1/admin/roles
func (h *AdminRoleHandler) Create(c *gin.Context) {
	var req model.CreateRoleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	role, err := h.service.CreateRole(c.Request.Context(), &req)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"role": role})
}

// Update godoc
// PUT /api/v1/admin/roles/:id
func (h *AdminRoleHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateRoleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	role, err := h.service.UpdateRole(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"role": role})
}

// Delete godoc
// DELETE /api/v1/admin/roles/:id
func (h *AdminRoleHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.service.DeleteRole(c.Request.Context(), id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// Admin accounts still hold this role.
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "role deleted successfully"})
}
