package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milkyano-media/aspire-backend/internal/model"
	"github.com/milkyano-media/aspire-backend/internal/response"
	"github.com/milkyano-media/aspire-backend/internal/service"
	"github.com/milkyano-media/aspire-backend/internal/validator"
	"github.com/milkyano-media/aspire-backend/internal/wiselms"
)

// BulkMailHandler exposes the admin bulk-email composer.
type BulkMailHandler struct {
	bulkMailService *service.BulkMailService
}

// NewBulkMailHandler creates a new BulkMailHandler.
func NewBulkMailHandler(bulkMailService *service.BulkMailService) *BulkMailHandler {
	return &BulkMailHandler{bulkMailService: bulkMailService}
}

// ListClasses godoc
// GET /api/v1/admin/emails/classes
// Lists the live WiseLMS classes an announcement can target.
func (h *BulkMailHandler) ListClasses(c *gin.Context) {
	classes, err := h.bulkMailService.ListClasses(c.Request.Context())
	if err != nil {
		failLMS(c, err)
		return
	}

	if classes == nil {
		classes = []wiselms.Course{}
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// Send godoc
// POST /api/v1/admin/emails/send
// Resolves the class roster and queues one message per parent.
func (h *BulkMailHandler) Send(c *gin.Context) {
	var req model.BulkEmailRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.bulkMailService.Compose(c.Request.Context(), req)
	if err != nil {
		failLMS(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"job": result})
}

// failLMS maps WiseLMS client failures to API errors.
func failLMS(c *gin.Context, err error) {
	if errors.Is(err, wiselms.ErrNotConfigured) {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrLMSNotConfigured)
		return
	}
	var apiErr *wiselms.APIError
	if errors.As(err, &apiErr) {
		response.Fail(c, http.StatusBadGateway, response.ErrLMSUnavailable)
		return
	}
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
