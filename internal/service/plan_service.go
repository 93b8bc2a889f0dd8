package service

import (
	"context"
	"errors"
	"fmt"

	"prodplan/internal/dto"
	"prodplan/internal/infra"
	"prodplan/internal/model"
	"prodplan/internal/planning"
	"prodplan/internal/repository"
	"prodplan/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PlanService defines the contract for production plan use cases.
type PlanService interface {
	PeriodView(ctx context.Context, month, year int) (*dto.PeriodViewResponse, error)
	Detail(ctx context.Context, id uuid.UUID) (*dto.PlanSummaryResponse, error)
	Create(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanSummaryResponse, error)
	// UpdateQuantity changes the plan target. Units beyond the new quantity
	// must all be PENDING; otherwise a *planning.ConflictError is returned.
	UpdateQuantity(ctx context.Context, id uuid.UUID, qty int) (*dto.PlanSummaryResponse, error)
	// CheckQuantity runs the quantity guard without writing.
	CheckQuantity(ctx context.Context, id uuid.UUID, qty int) (*dto.QuantityCheckResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type planService struct {
	plans   repository.PlanRepository
	catalog repository.CatalogRepository
	notify  planNotifier
}

func NewPlanService(plans repository.PlanRepository, catalog repository.CatalogRepository, events worker.Publisher, cache *infra.JSONCache) PlanService {
	return &planService{plans: plans, catalog: catalog, notify: newPlanNotifier(events, cache)}
}

func (s *planService) PeriodView(ctx context.Context, month, year int) (*dto.PeriodViewResponse, error) {
	period := planning.Period{Month: month, Year: year}
	if err := period.Validate(); err != nil {
		return nil, err
	}
	plans, err := s.plans.FindByPeriod(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("listing plans for %s: %w", period, err)
	}
	return periodViewToResponse(period, plans, planning.Aggregate(plans)), nil
}

func (s *planService) Detail(ctx context.Context, id uuid.UUID) (*dto.PlanSummaryResponse, error) {
	p, err := s.findPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := planSummaryToResponse(*p, planning.SummarizePlan(*p))
	return &resp, nil
}

func (s *planService) Create(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanSummaryResponse, error) {
	period := planning.Period{Month: req.Month, Year: req.Year}
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if err := planning.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}
	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		return nil, planning.NewValidation("recipe_id", "must be a valid id")
	}

	recipe, err := s.catalog.FindRecipeByID(ctx, recipeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, planning.NewNotFound("recipe", recipeID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("loading recipe: %w", err)
	}

	existing, err := s.plans.FindByRecipePeriod(ctx, recipeID, period.Month, period.Year)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking existing plan: %w", err)
	}
	if existing != nil {
		return nil, duplicatePlan(recipe.Name, period)
	}

	plan := &model.ProductionPlan{
		RecipeID: recipeID,
		Month:    period.Month,
		Year:     period.Year,
		Quantity: req.Quantity,
		Version:  1,
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicatePlan(recipe.Name, period)
		}
		return nil, fmt.Errorf("creating plan: %w", err)
	}

	log.Info().
		Str("plan_id", plan.ID.String()).
		Str("recipe", recipe.Name).
		Str("period", period.String()).
		Int("quantity", plan.Quantity).
		Msg("plan created")
	s.notify.planChanged(ctx, worker.EventPlanCreated, *plan, 0)

	plan.Recipe = recipe
	resp := planSummaryToResponse(*plan, planning.SummarizePlan(*plan))
	return &resp, nil
}

func duplicatePlan(recipeName string, period planning.Period) *planning.ConflictError {
	return &planning.ConflictError{Reason: fmt.Sprintf("A plan for %s already exists in %s", recipeName, period)}
}

func (s *planService) UpdateQuantity(ctx context.Context, id uuid.UUID, qty int) (*dto.PlanSummaryResponse, error) {
	if err := planning.ValidateQuantity(qty); err != nil {
		return nil, err
	}
	current, err := s.findPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := planning.CheckQuantityChange(current.Units, qty); err != nil {
		return nil, s.conflict(id, qty, err)
	}

	updated, err := s.plans.UpdateQuantityGuarded(ctx, id, qty, func(locked *model.ProductionPlan) error {
		return planning.CheckQuantityChange(locked.Units, qty)
	})
	if err != nil {
		return nil, s.mapWriteError(id, qty, err)
	}

	log.Info().
		Str("plan_id", id.String()).
		Int("from", current.Quantity).
		Int("to", qty).
		Int("version", updated.Version).
		Msg("plan quantity updated")
	s.notify.planChanged(ctx, worker.EventPlanQuantityChanged, *updated, current.Quantity)

	return s.Detail(ctx, id)
}

func (s *planService) CheckQuantity(ctx context.Context, id uuid.UUID, qty int) (*dto.QuantityCheckResponse, error) {
	if err := planning.ValidateQuantity(qty); err != nil {
		return nil, err
	}
	p, err := s.findPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := &dto.QuantityCheckResponse{Allowed: true, Quantity: qty}
	var conflict *planning.ConflictError
	if err := planning.CheckQuantityChange(p.Units, qty); errors.As(err, &conflict) {
		resp.Allowed = false
		resp.BlockingUnit = conflict.UnitNumber
		resp.Reason = conflict.Reason
	} else if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *planService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.findPlan(ctx, id)
	if err != nil {
		return err
	}
	if err := s.plans.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return planning.NewNotFound("plan", id.String())
		}
		return fmt.Errorf("deleting plan: %w", err)
	}
	log.Info().Str("plan_id", id.String()).Int("units", len(p.Units)).Msg("plan deleted")
	s.notify.planChanged(ctx, worker.EventPlanDeleted, *p, p.Quantity)
	return nil
}

func (s *planService) findPlan(ctx context.Context, id uuid.UUID) (*model.ProductionPlan, error) {
	p, err := s.plans.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, planning.NewNotFound("plan", id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("loading plan: %w", err)
	}
	return p, nil
}

// mapWriteError translates guarded-write failures into domain errors.
func (s *planService) mapWriteError(id uuid.UUID, qty int, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return planning.NewNotFound("plan", id.String())
	case errors.Is(err, repository.ErrStaleVersion):
		return s.conflict(id, qty, &planning.ConflictError{Reason: "Plan was modified concurrently; reload and retry"})
	}
	var conflict *planning.ConflictError
	if errors.As(err, &conflict) {
		return s.conflict(id, qty, err)
	}
	var invalid *planning.ValidationError
	if errors.As(err, &invalid) {
		return err
	}
	return fmt.Errorf("updating plan quantity: %w", err)
}

func (s *planService) conflict(id uuid.UUID, qty int, err error) error {
	var conflict *planning.ConflictError
	if errors.As(err, &conflict) {
		infra.QuantityConflicts.Inc()
		log.Warn().
			Str("plan_id", id.String()).
			Int("proposed", qty).
			Int("blocking_unit", conflict.UnitNumber).
			Msg(conflict.Reason)
	}
	return err
}
