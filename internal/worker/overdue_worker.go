package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edustack/campus-backend/internal/config"
	"github.com/edustack/campus-backend/internal/repository"
)

// sweepLockTTL keeps a crashed holder from blocking the sweep forever.
const sweepLockTTL = 10 * time.Minute

// OverdueWorker periodically flips unpaid fee records past their due date to
// overdue and queues a reminder for each. A Redis lock ensures only one
// instance sweeps at a time.
type OverdueWorker struct {
	feeRepo  *repository.FeeRepository
	rdb      *redis.Client
	interval time.Duration
	log      zerolog.Logger
}

// NewOverdueWorker creates a new OverdueWorker.
func NewOverdueWorker(feeRepo *repository.FeeRepository, rdb *redis.Client, interval time.Duration, log zerolog.Logger) *OverdueWorker {
	return &OverdueWorker{
		feeRepo:  feeRepo,
		rdb:      rdb,
		interval: interval,
		log:      log.With().Str("component", "overdue_worker").Logger(),
	}
}

// reminderPayload is queued for every record flipped to overdue. A separate
// notification consumer drains the queue.
type reminderPayload struct {
	FeeRecordID uuid.UUID `json:"fee_record_id"`
	SweptAt     time.Time `json:"swept_at"`
}

// Start runs the sweep loop until the context is cancelled. One sweep runs
// immediately on startup.
func (w *OverdueWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("OverdueWorker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("OverdueWorker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *OverdueWorker) sweep(ctx context.Context) {
	acquired, err := w.rdb.SetNX(ctx, config.CacheKey.OverdueSweepLock(), time.Now().Unix(), sweepLockTTL).Result()
	if err != nil {
		w.log.Error().Err(err).Msg("sweep lock acquisition failed")
		return
	}
	if !acquired {
		w.log.Debug().Msg("sweep already running elsewhere, skipping")
		return
	}
	defer w.rdb.Del(ctx, config.CacheKey.OverdueSweepLock())

	flipped, err := w.feeRepo.MarkOverdue(ctx, time.Now())
	if err != nil {
		w.log.Error().Err(err).Msg("overdue sweep failed")
		return
	}
	if len(flipped) == 0 {
		return
	}

	for _, id := range flipped {
		payload, err := json.Marshal(reminderPayload{FeeRecordID: id, SweptAt: time.Now()})
		if err != nil {
			continue
		}
		if err := w.rdb.RPush(ctx, config.CacheKey.FeeReminderQueue(), payload).Err(); err != nil {
			w.log.Warn().Err(err).Str("fee_record_id", id.String()).Msg("reminder enqueue failed")
		}
	}
	w.log.Info().Int("flipped", len(flipped)).Msg("overdue sweep completed")
}
