// Package mailer sends transactional and bulk email through SendGrid.
package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/milkyano-media/aspire-backend/internal/config"
	"github.com/milkyano-media/aspire-backend/internal/model"
)

// Mailer delivers a single message to a single recipient.
type Mailer interface {
	Send(ctx context.Context, msg model.EmailMessage) error
}

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendGridMailer is the production Mailer backed by the SendGrid v3 API.
type SendGridMailer struct {
	key  string
	from *sgmail.Email
	log  zerolog.Logger
}

// NewSendGridMailer creates a new SendGridMailer from config.
func NewSendGridMailer(cfg *config.Config, log zerolog.Logger) *SendGridMailer {
	return &SendGridMailer{
		key:  cfg.SendgridAPIKey,
		from: sgmail.NewEmail(cfg.EmailFromName, cfg.EmailFromAddress),
		log:  log.With().Str("component", "sendgrid_mailer").Logger(),
	}
}

// Send delivers one message. Non-2xx API responses are returned as errors;
// retry policy is the caller's concern.
func (m *SendGridMailer) Send(ctx context.Context, msg model.EmailMessage) error {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	v3.AddContent(
		sgmail.NewContent("text/plain", msg.TextBody),
		sgmail.NewContent("text/html", msg.HTMLBody),
	)

	req := sendgrid.GetRequest(m.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(v3)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid responded %d: %s", res.StatusCode, res.Body)
	}

	m.log.Debug().Str("to", msg.ToEmail).Str("job_id", msg.JobID).Msg("Email sent")
	return nil
}
