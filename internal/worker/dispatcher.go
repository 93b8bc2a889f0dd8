package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// QueuePlanEvents is the Redis list the reconciliation service pops from
// (BRPOP), so events are consumed in publish order.
const QueuePlanEvents = "events:plans"

// Dispatcher enqueues plan events into a Redis list.
type Dispatcher struct {
	rdb   *redis.Client
	queue string
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb, queue: QueuePlanEvents}
}

func (d *Dispatcher) Publish(ctx context.Context, ev PlanEvent) error {
	encoded, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("dispatcher: encode %s: %w", ev.Type, err)
	}
	return d.rdb.LPush(ctx, d.queue, encoded).Err()
}

// Close is a no-op; the Redis client is shared and closed by main.
func (d *Dispatcher) Close() error { return nil }
