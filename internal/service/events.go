package service

import (
	"context"
	"time"

	"prodplan/internal/infra"
	"prodplan/internal/model"
	"prodplan/internal/planning"
	"prodplan/internal/worker"

	"github.com/rs/zerolog/log"
)

// planNotifier publishes plan events and drops cached demand snapshots after
// a plan mutation. Both are best-effort: the write has already committed.
type planNotifier struct {
	events worker.Publisher
	cache  *infra.JSONCache
}

func newPlanNotifier(events worker.Publisher, cache *infra.JSONCache) planNotifier {
	if events == nil {
		events = worker.NopPublisher{}
	}
	return planNotifier{events: events, cache: cache}
}

func (n planNotifier) planChanged(ctx context.Context, eventType string, p model.ProductionPlan, prevQty int) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	ev := worker.NewPlanEvent(eventType, p.ID, p.RecipeID, p.Month, p.Year, p.Quantity, prevQty)
	if err := n.events.Publish(pubCtx, ev); err != nil {
		infra.PlanEventsPublished.WithLabelValues(eventType, "failed").Inc()
		log.Warn().Err(err).Str("type", eventType).Str("plan_id", p.ID.String()).Msg("plan event not published")
	} else {
		infra.PlanEventsPublished.WithLabelValues(eventType, "ok").Inc()
	}

	n.invalidateDemand(pubCtx, planning.Period{Month: p.Month, Year: p.Year})
}

func (n planNotifier) invalidateDemand(ctx context.Context, period planning.Period) {
	if err := n.cache.Delete(ctx, period.String()); err != nil {
		log.Warn().Err(err).Str("period", period.String()).Msg("demand cache invalidation failed")
	}
}
