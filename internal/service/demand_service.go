package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prodplan/internal/dto"
	"prodplan/internal/infra"
	"prodplan/internal/planning"
	"prodplan/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DemandService compares the component requirements of a month's plans with
// current stock.
type DemandService interface {
	Analyze(ctx context.Context, month, year int) (*dto.DemandResponse, error)
}

type demandService struct {
	plans   repository.PlanRepository
	catalog repository.CatalogRepository
	cache   *infra.JSONCache
	now     func() time.Time
}

// NewDemandService wires the analyzer. cache may be nil; now defaults to
// time.Now.
func NewDemandService(plans repository.PlanRepository, catalog repository.CatalogRepository, cache *infra.JSONCache, now func() time.Time) DemandService {
	if now == nil {
		now = time.Now
	}
	return &demandService{plans: plans, catalog: catalog, cache: cache, now: now}
}

func (s *demandService) Analyze(ctx context.Context, month, year int) (*dto.DemandResponse, error) {
	period := planning.Period{Month: month, Year: year}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	// A month that has ended has no demand, whatever was cached while it ran.
	if period.Before(planning.PeriodOf(s.now())) {
		return demandToResponse(period, []planning.DemandRow{}), nil
	}

	var cached dto.DemandResponse
	err := s.cache.Get(ctx, period.String(), &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, infra.ErrCacheMiss) {
		log.Warn().Err(err).Str("period", period.String()).Msg("demand cache read failed")
	}

	plans, err := s.plans.FindByPeriod(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("listing plans for %s: %w", period, err)
	}
	seen := make(map[uuid.UUID]bool, len(plans))
	ids := make([]uuid.UUID, 0, len(plans))
	for _, p := range plans {
		if !seen[p.RecipeID] {
			seen[p.RecipeID] = true
			ids = append(ids, p.RecipeID)
		}
	}
	recipes, err := s.catalog.FindRecipesWithIngredients(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading recipe ingredients: %w", err)
	}

	rows := planning.AnalyzeDemand(period, s.now(), plans, recipes)
	resp := demandToResponse(period, rows)
	infra.DemandShortProducts.WithLabelValues(period.String()).Set(float64(resp.ShortCount))

	if err := s.cache.Set(ctx, period.String(), resp); err != nil {
		log.Warn().Err(err).Str("period", period.String()).Msg("demand cache write failed")
	}
	return resp, nil
}
