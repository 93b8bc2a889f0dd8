package worker

// dlq.go: Dead Letter Queue
// Plan events the broker refused are parked here so an operator can replay
// them. One Redis list per source queue: dlq:{original_queue}

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry wraps an undelivered event with failure metadata.
type DLQEntry struct {
	OriginalQueue string    `json:"original_queue"`
	Event         PlanEvent `json:"event"`
	Reason        string    `json:"reason"`
	FailedAt      string    `json:"failed_at"` // ISO 8601
}

// SendToDLQ pushes ev to the dead letter list for queue.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, ev PlanEvent, reason string) {
	entry := DLQEntry{
		OriginalQueue: queue,
		Event:         ev,
		Reason:        reason,
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to marshal entry")
		return
	}

	dlqKey := DLQPrefix + queue
	if err := rdb.LPush(ctx, dlqKey, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", dlqKey).Msg("dlq: failed to push to DLQ")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("event_type", ev.Type).
		Str("plan_id", ev.PlanID.String()).
		Str("reason", reason).
		Msg("dlq: event moved to dead letter queue")
}

// DLQLength returns the number of parked events, reported by /health.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
