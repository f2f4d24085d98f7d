package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/milkyano-media/aspire-backend/internal/config"
	"github.com/milkyano-media/aspire-backend/internal/model"
	"github.com/milkyano-media/aspire-backend/internal/wiselms"
)

// RosterGateway is the slice of the WiseLMS client the bulk-mail composer
// needs: the class catalog plus per-class parent rosters.
type RosterGateway interface {
	GetCourses(ctx context.Context, classType string) ([]wiselms.Course, error)
	GetStudentsWithParents(ctx context.Context, courseID string) ([]wiselms.StudentWithParent, error)
}

// BulkMailService expands a parent-facing announcement into per-recipient
// messages and queues them for the mail worker. Delivery itself happens
// asynchronously off the Redis queue.
type BulkMailService struct {
	lms   RosterGateway
	redis *redis.Client
	log   zerolog.Logger
}

// NewBulkMailService creates a new BulkMailService.
func NewBulkMailService(lms RosterGateway, redisClient *redis.Client, log zerolog.Logger) *BulkMailService {
	return &BulkMailService{
		lms:   lms,
		redis: redisClient,
		log:   log.With().Str("component", "bulkmail_service").Logger(),
	}
}

// ListClasses returns the live classes an announcement can target.
func (s *BulkMailService) ListClasses(ctx context.Context) ([]wiselms.Course, error) {
	return s.lms.GetCourses(ctx, wiselms.ClassTypeLive)
}

// Compose resolves the class roster, renders the body per recipient and
// pushes one message per parent onto the send queue. Students whose parent
// lookups failed are already filtered out by the roster gateway; Compose
// additionally skips entries without a parent email address.
func (s *BulkMailService) Compose(ctx context.Context, req model.BulkEmailRequest) (*model.BulkEmailResult, error) {
	roster, err := s.lms.GetStudentsWithParents(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}

	jobID := uuid.New().String()
	messages, skipped := renderMessages(req, roster, jobID)
	result := &model.BulkEmailResult{JobID: jobID, Skipped: skipped}

	for _, msg := range messages {
		payload, err := json.Marshal(msg)
		if err != nil {
			s.log.Error().Err(err).Str("to", msg.ToEmail).Msg("Failed to marshal email message")
			result.Skipped++
			continue
		}

		if err := s.redis.RPush(ctx, config.WorkerKey.EmailSendQueue, payload).Err(); err != nil {
			return nil, err
		}
		result.Queued++
	}

	s.log.Info().
		Str("job_id", jobID).
		Str("class_id", req.ClassID).
		Int("queued", result.Queued).
		Int("skipped", result.Skipped).
		Msg("Bulk email queued")
	return result, nil
}

// renderMessages expands the announcement into one message per parent,
// substituting the per-recipient placeholders. Entries without a parent
// email are counted as skipped.
func renderMessages(req model.BulkEmailRequest, roster []wiselms.StudentWithParent, jobID string) ([]model.EmailMessage, int) {
	messages := make([]model.EmailMessage, 0, len(roster))
	skipped := 0

	for _, entry := range roster {
		if entry.Parent.Email == "" {
			skipped++
			continue
		}

		replacer := strings.NewReplacer(
			"{{parent_name}}", entry.Parent.Name,
			"{{student_name}}", entry.Student.Name,
		)
		body := replacer.Replace(req.Body)

		messages = append(messages, model.EmailMessage{
			ToName:   entry.Parent.Name,
			ToEmail:  entry.Parent.Email,
			Subject:  req.Subject,
			HTMLBody: body,
			TextBody: stripTags(body),
			JobID:    jobID,
		})
	}

	return messages, skipped
}

// stripTags makes a crude plain-text alternative from an HTML body. Good
// enough for multipart fallback; mail clients render the HTML part.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
