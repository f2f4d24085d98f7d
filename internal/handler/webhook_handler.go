package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/milkyano-media/aspire-backend/internal/config"
	"github.com/milkyano-media/aspire-backend/internal/service"
	"github.com/milkyano-media/aspire-backend/internal/wiselms"
)

// WebhookHandler receives WiseLMS classroom-membership events and keeps
// Activities companion enrollments in sync.
//
// Response shapes here are fixed by the webhook contract with WiseLMS and
// deliberately bypass the standard response envelope: the sender only
// understands {"received": true} style bodies.
type WebhookHandler struct {
	secret     string
	enrollment *service.EnrollmentService
	log        zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(cfg *config.Config, enrollment *service.EnrollmentService, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		secret:     cfg.WiseLMS.WebhookSecret,
		enrollment: enrollment,
		log:        log.With().Str("component", "webhook_handler").Logger(),
	}
}

// HandleWiseLMSEvent godoc
// POST /api/wiselms/webhook
// Verifies the shared secret, parses the event, and dispatches classroom
// membership changes. Always returns 200 once the event is accepted, even
// when processing fails: WiseLMS retries on non-2xx, and a retry of a
// failed sync would not fare better than the original attempt.
func (h *WebhookHandler) HandleWiseLMSEvent(c *gin.Context) {
	// Exact-match shared secret. An unset secret disables the check.
	if h.secret != "" && c.GetHeader("Authorization") != h.secret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var event wiselms.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	if event.Event == "" || event.Payload == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event structure"})
		return
	}

	h.log.Info().
		Str("event", event.Event).
		Str("classroom", event.Payload.Classroom.Name).
		Str("student_id", event.Payload.Student.ID).
		Msg("Webhook event received")

	var err error
	switch event.Event {
	case wiselms.EventStudentAddedToClassroom:
		err = h.enrollment.SyncActivitiesMembership(
			c.Request.Context(),
			event.Payload.Classroom.Name,
			event.Payload.Student.ID,
			true,
		)
	case wiselms.EventStudentRemovedFromClassroom:
		err = h.enrollment.SyncActivitiesMembership(
			c.Request.Context(),
			event.Payload.Classroom.Name,
			event.Payload.Student.ID,
			false,
		)
	default:
		h.log.Info().Str("event", event.Event).Msg("Ignoring unhandled event type")
	}

	if err != nil {
		h.log.Error().Err(err).Str("event", event.Event).Msg("Webhook processing failed")
		c.JSON(http.StatusOK, gin.H{"received": true, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
