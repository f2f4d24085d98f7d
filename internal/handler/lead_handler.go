package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/milkyano-media/aspire-backend/internal/model"
	"github.com/milkyano-media/aspire-backend/internal/response"
	"github.com/milkyano-media/aspire-backend/internal/service"
	"github.com/milkyano-media/aspire-backend/internal/validator"
)

// LeadHandler handles consultation lead intake and the admin follow-up views.
type LeadHandler struct {
	leadService *service.LeadService
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Create godoc
// POST /api/v1/leads
// Public intake from the marketing site's consultation form.
func (h *LeadHandler) Create(c *gin.Context) {
	var req model.CreateLeadRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	lead, err := h.leadService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"lead": lead})
}

// List godoc
// GET /api/v1/admin/leads?status=NEW&page=1&per_page=20
func (h *LeadHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	status := model.LeadStatus(c.Query("status"))

	leads, total, err := h.leadService.List(c.Request.Context(), status, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if leads == nil {
		leads = []model.Lead{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"leads": leads}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	})
}

// UpdateStatus godoc
// PATCH /api/v1/admin/leads/:id/status
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateLeadStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.leadService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "lead status updated"})
}

// Export godoc
// GET /api/v1/admin/leads/export
// Streams every lead as an xlsx download.
func (h *LeadHandler) Export(c *gin.Context) {
	f, err := h.leadService.ExportXLSX(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	filename := fmt.Sprintf("leads-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		// Headers already sent; nothing more to do than log via gin's recovery.
		_ = c.Error(err)
	}
}
