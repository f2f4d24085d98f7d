// Package worker hosts the background queue consumers.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/milkyano-media/aspire-backend/internal/config"
	"github.com/milkyano-media/aspire-backend/internal/mailer"
	"github.com/milkyano-media/aspire-backend/internal/model"
)

// MailerWorker consumes the email send queue and delivers messages through
// the configured Mailer. Sends are throttled so a large bulk job cannot
// burn through the provider's rate limits.
type MailerWorker struct {
	rdb         *redis.Client
	mailer      mailer.Mailer
	sendTimeout time.Duration
	limiter     *rate.Limiter
	log         zerolog.Logger
}

// NewMailerWorker creates a new MailerWorker.
func NewMailerWorker(rdb *redis.Client, m mailer.Mailer, cfg *config.Config, log zerolog.Logger) *MailerWorker {
	return &MailerWorker{
		rdb:         rdb,
		mailer:      m,
		sendTimeout: cfg.EmailSendTimeout,
		limiter:     rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		log:         log.With().Str("component", "mailer_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *MailerWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining items before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *MailerWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.EmailSendQueue).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	if err := w.limiter.Wait(ctx); err != nil {
		// Shutting down mid-wait: push the item back for the drain pass.
		w.rdb.RPush(context.Background(), config.WorkerKey.EmailSendQueue, result[1])
		return
	}

	w.deliver(ctx, []byte(result[1]))
}

// deliver sends one queued message. Failed sends are logged and dropped,
// not retried: the admin dashboard surfaces the error log, and re-sending
// an announcement is cheap.
func (w *MailerWorker) deliver(ctx context.Context, raw []byte) {
	var msg model.EmailMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error")
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, w.sendTimeout)
	defer cancel()

	if err := w.mailer.Send(sendCtx, msg); err != nil {
		w.log.Error().Err(err).
			Str("to", msg.ToEmail).
			Str("job_id", msg.JobID).
			Msg("Send error")
	}
}

// drain delivers all remaining queued messages before shutdown.
func (w *MailerWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.WorkerKey.EmailSendQueue).Result()
		if err != nil {
			break
		}
		if err := w.limiter.Wait(ctx); err != nil {
			break
		}
		w.deliver(ctx, []byte(result))
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining messages")
	}
}
