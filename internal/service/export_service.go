package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"prodplan/internal/dto"
	"prodplan/internal/infra"
	"prodplan/internal/planning"
	"prodplan/internal/repository"
)

// ExportService flattens a month's plans into one row per unit.
type ExportService interface {
	PlanDetail(ctx context.Context, month, year int) ([]dto.ExportRow, error)
	PlanDetailWorkbook(ctx context.Context, month, year int, w io.Writer) error
}

type exportService struct {
	plans repository.PlanRepository
}

func NewExportService(plans repository.PlanRepository) ExportService {
	return &exportService{plans: plans}
}

func (s *exportService) PlanDetail(ctx context.Context, month, year int) ([]dto.ExportRow, error) {
	period := planning.Period{Month: month, Year: year}
	if err := period.Validate(); err != nil {
		return nil, err
	}
	plans, err := s.plans.FindByPeriod(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("listing plans for %s: %w", period, err)
	}

	rows := []dto.ExportRow{}
	for _, p := range plans {
		summary := planning.SummarizePlan(p)
		sectionNames := make(map[string]string)
		if p.Recipe != nil {
			for _, sec := range p.Recipe.Sections {
				sectionNames[sec.ID.String()] = sec.Name
			}
		}
		customIDs := make(map[int]string, len(p.Units))
		serials := make(map[int]string, len(p.Units))
		for _, u := range p.Units {
			if u.CustomID != nil {
				customIDs[u.UnitNumber] = *u.CustomID
			}
			if u.SerialNumber != nil {
				serials[u.UnitNumber] = *u.SerialNumber
			}
		}

		for _, up := range summary.Units {
			steps := make([]string, 0, len(up.ValidCompleted))
			for _, id := range up.ValidCompleted {
				steps = append(steps, sectionNames[id])
			}
			rows = append(rows, dto.ExportRow{
				Month:          p.Month,
				Year:           p.Year,
				RecipeName:     summary.RecipeName,
				TargetQuantity: p.Quantity,
				UnitNumber:     up.UnitNumber,
				SerialNumber:   serials[up.UnitNumber],
				CustomID:       customIDs[up.UnitNumber],
				Status:         string(up.Status),
				Progress:       up.Steps(),
				CompletedSteps: strings.Join(steps, ", "),
			})
		}
	}
	return rows, nil
}

func (s *exportService) PlanDetailWorkbook(ctx context.Context, month, year int, w io.Writer) error {
	rows, err := s.PlanDetail(ctx, month, year)
	if err != nil {
		return err
	}
	cells := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, r.Cells())
	}
	return infra.WriteTable(w, "Plan Detail", dto.ExportHeader, cells)
}
