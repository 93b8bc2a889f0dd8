package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"prodplan/internal/dto"
	"prodplan/internal/infra"
	"prodplan/internal/planning"
	"prodplan/internal/repository"
)

// OverviewService compiles the recipe x month matrix of a year.
type OverviewService interface {
	Compile(ctx context.Context, year int) (*dto.AnnualOverviewResponse, error)
	RenderPDF(ctx context.Context, year int, w io.Writer) error
}

type overviewService struct {
	plans   repository.PlanRepository
	catalog repository.CatalogRepository
}

func NewOverviewService(plans repository.PlanRepository, catalog repository.CatalogRepository) OverviewService {
	return &overviewService{plans: plans, catalog: catalog}
}

func (s *overviewService) compile(ctx context.Context, year int) (planning.AnnualOverview, error) {
	if err := planning.ValidateYear(year); err != nil {
		return planning.AnnualOverview{}, err
	}
	plans, err := s.plans.FindByYear(ctx, year)
	if err != nil {
		return planning.AnnualOverview{}, fmt.Errorf("listing plans for %d: %w", year, err)
	}
	recipes, err := s.catalog.ListRecipes(ctx)
	if err != nil {
		return planning.AnnualOverview{}, fmt.Errorf("listing recipes: %w", err)
	}
	return planning.CompileAnnualOverview(year, recipes, plans), nil
}

func (s *overviewService) Compile(ctx context.Context, year int) (*dto.AnnualOverviewResponse, error) {
	ov, err := s.compile(ctx, year)
	if err != nil {
		return nil, err
	}
	return overviewToResponse(ov), nil
}

func (s *overviewService) RenderPDF(ctx context.Context, year int, w io.Writer) error {
	ov, err := s.compile(ctx, year)
	if err != nil {
		return err
	}
	return infra.WriteOverviewPDF(w, ov, time.Now())
}
