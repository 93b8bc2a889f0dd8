package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"prodplan/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes plan events to a Kafka topic keyed by plan id.
// Writes go through a circuit breaker; events that cannot be delivered are
// parked in the Redis dead letter queue when a client is available.
type KafkaPublisher struct {
	w   messageWriter
	cb  *infra.CircuitBreaker
	rdb *redis.Client
}

func NewKafkaPublisher(w *kafka.Writer, rdb *redis.Client) *KafkaPublisher {
	return newKafkaPublisher(w, rdb)
}

func newKafkaPublisher(w messageWriter, rdb *redis.Client) *KafkaPublisher {
	return &KafkaPublisher{
		w:   w,
		cb:  infra.NewCircuitBreaker(infra.DefaultBreakerConfig()),
		rdb: rdb,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev PlanEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("kafka: encode %s: %w", ev.Type, err)
	}
	msg := kafka.Message{
		Key:   []byte(ev.PlanID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	}

	err = p.cb.Execute(func() error {
		return p.w.WriteMessages(ctx, msg)
	})
	if err != nil {
		if p.rdb != nil {
			SendToDLQ(ctx, p.rdb, QueuePlanEvents, ev, err.Error())
		}
		log.Warn().Err(err).Str("breaker", p.cb.State().String()).Msg("kafka: publish failed")
		return err
	}
	return nil
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }
