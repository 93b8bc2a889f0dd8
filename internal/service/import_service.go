package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"prodplan/internal/dto"
	"prodplan/internal/infra"
	"prodplan/internal/model"
	"prodplan/internal/planning"
	"prodplan/internal/repository"
	"prodplan/internal/worker"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ImportService upserts monthly plan targets from tabular input. Rows are
// validated and committed one by one; a failing row never undoes the rows
// committed before it.
type ImportService interface {
	Import(ctx context.Context, req dto.ImportPlansRequest) (*dto.ImportResultResponse, error)
	// ImportWorkbook reads an .xlsx or .csv upload whose header row names the
	// recipe and quantity columns.
	ImportWorkbook(ctx context.Context, r io.Reader, filename string, month, year int) (*dto.ImportResultResponse, error)
}

type importService struct {
	plans   repository.PlanRepository
	catalog repository.CatalogRepository
	notify  planNotifier
}

func NewImportService(plans repository.PlanRepository, catalog repository.CatalogRepository, events worker.Publisher, cache *infra.JSONCache) ImportService {
	return &importService{plans: plans, catalog: catalog, notify: newPlanNotifier(events, cache)}
}

func (s *importService) Import(ctx context.Context, req dto.ImportPlansRequest) (*dto.ImportResultResponse, error) {
	rows := make([]planning.ImportRow, 0, len(req.Rows))
	for i, r := range req.Rows {
		rows = append(rows, planning.ImportRow{Row: i + 1, RecipeName: r.RecipeName, Quantity: r.Quantity})
	}
	return s.importRows(ctx, planning.Period{Month: req.Month, Year: req.Year}, rows)
}

func (s *importService) ImportWorkbook(ctx context.Context, r io.Reader, filename string, month, year int) (*dto.ImportResultResponse, error) {
	period := planning.Period{Month: month, Year: year}
	if err := period.Validate(); err != nil {
		return nil, err
	}
	table, err := infra.ReadTable(r, filename)
	if err != nil {
		log.Warn().Err(err).Str("file", filename).Msg("import: unreadable upload")
		return nil, planning.NewValidation("file", "could not read spreadsheet")
	}
	rows, err := planning.RowsFromTable(table)
	if err != nil {
		return nil, err
	}
	return s.importRows(ctx, period, rows)
}

func (s *importService) importRows(ctx context.Context, period planning.Period, rows []planning.ImportRow) (*dto.ImportResultResponse, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rows))
	for _, r := range rows {
		if name := strings.TrimSpace(r.RecipeName); name != "" {
			names = append(names, name)
		}
	}
	recipes, err := s.catalog.FindRecipesByNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("resolving recipe names: %w", err)
	}
	byName := make(map[string]model.Recipe, len(recipes))
	for _, r := range recipes {
		byName[r.Name] = r
	}

	result := &dto.ImportResultResponse{Errors: []string{}}
	for _, row := range planning.ResolveImportRows(rows, byName) {
		if !row.Valid {
			infra.ImportRows.WithLabelValues("invalid").Inc()
			result.Errors = append(result.Errors, row.ErrorLines()...)
			continue
		}
		created, err := s.commitRow(ctx, period, row)
		if err != nil {
			infra.ImportRows.WithLabelValues("failed").Inc()
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", row.Row, rowFailure(err)))
			continue
		}
		result.SuccessCount++
		if created {
			result.Created++
			infra.ImportRows.WithLabelValues("created").Inc()
		} else {
			result.Updated++
			infra.ImportRows.WithLabelValues("updated").Inc()
		}
	}

	log.Info().
		Str("period", period.String()).
		Int("rows", len(rows)).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("errors", len(result.Errors)).
		Msg("plan import finished")
	return result, nil
}

// commitRow creates the plan or overwrites its quantity through the guard.
func (s *importService) commitRow(ctx context.Context, period planning.Period, row planning.ResolvedRow) (created bool, err error) {
	existing, err := s.plans.FindByRecipePeriod(ctx, row.RecipeID, period.Month, period.Year)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		plan := &model.ProductionPlan{
			RecipeID: row.RecipeID,
			Month:    period.Month,
			Year:     period.Year,
			Quantity: row.Quantity,
			Version:  1,
		}
		if err := s.plans.Create(ctx, plan); err != nil {
			return false, err
		}
		s.notify.planChanged(ctx, worker.EventPlanCreated, *plan, 0)
		return true, nil
	}
	if err != nil {
		return false, err
	}

	updated, err := s.plans.UpdateQuantityGuarded(ctx, existing.ID, row.Quantity, func(locked *model.ProductionPlan) error {
		return planning.CheckQuantityChange(locked.Units, row.Quantity)
	})
	if err != nil {
		return false, err
	}
	s.notify.planChanged(ctx, worker.EventPlanQuantityChanged, *updated, existing.Quantity)
	return false, nil
}

// rowFailure renders a commit error for the import report without leaking
// storage details.
func rowFailure(err error) string {
	var conflict *planning.ConflictError
	var invalid *planning.ValidationError
	switch {
	case errors.As(err, &conflict):
		infra.QuantityConflicts.Inc()
		return conflict.Reason
	case errors.As(err, &invalid):
		return invalid.Error()
	case errors.Is(err, repository.ErrStaleVersion):
		infra.QuantityConflicts.Inc()
		return "Plan was modified concurrently; reload and retry"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return "Plan was created concurrently; re-run the import"
	default:
		log.Error().Err(err).Msg("import: row commit failed")
		return "could not save plan"
	}
}
