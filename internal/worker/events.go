package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Plan event types consumed by the unit reconciliation service, which owns
// creating and deleting unit records when a plan's target changes.
const (
	EventPlanCreated         = "plan.created"
	EventPlanQuantityChanged = "plan.quantity_changed"
	EventPlanDeleted         = "plan.deleted"
)

// PlanEvent is the envelope written to the event sink.
type PlanEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	PlanID     uuid.UUID `json:"plan_id"`
	RecipeID   uuid.UUID `json:"recipe_id"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	Quantity   int       `json:"quantity"`
	PrevQty    int       `json:"previous_quantity,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewPlanEvent stamps a fresh id and timestamp.
func NewPlanEvent(eventType string, planID, recipeID uuid.UUID, month, year, qty, prev int) PlanEvent {
	return PlanEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		PlanID:     planID,
		RecipeID:   recipeID,
		Month:      month,
		Year:       year,
		Quantity:   qty,
		PrevQty:    prev,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher hands plan events to whatever sink is configured.
type Publisher interface {
	Publish(ctx context.Context, ev PlanEvent) error
	Close() error
}

// NopPublisher drops every event. Used when EVENTS_SINK=none and in tests.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, PlanEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
