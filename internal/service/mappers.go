package service

import (
	"prodplan/internal/dto"
	"prodplan/internal/model"
	"prodplan/internal/planning"
)

func countsToResponse(c planning.BucketCounts) dto.BucketCountsResponse {
	return dto.BucketCountsResponse{
		Sold:        c.Sold,
		Packed:      c.Packed,
		Assembled:   c.Assembled,
		NotFinished: c.NotFinished,
	}
}

func planSummaryToResponse(p model.ProductionPlan, s planning.PlanSummary) dto.PlanSummaryResponse {
	identifiers := make(map[int]string, len(p.Units))
	for _, u := range p.Units {
		identifiers[u.UnitNumber] = u.ProductIdentifier()
	}
	units := make([]dto.UnitProgressResponse, 0, len(s.Units))
	for _, u := range s.Units {
		units = append(units, dto.UnitProgressResponse{
			UnitNumber:        u.UnitNumber,
			ProductIdentifier: identifiers[u.UnitNumber],
			Status:            string(u.Status),
			Progress:          u.Progress,
			Steps:             u.Steps(),
			ValidCompleted:    u.ValidCompleted,
		})
	}
	return dto.PlanSummaryResponse{
		ID:                s.PlanID.String(),
		RecipeID:          s.RecipeID.String(),
		RecipeName:        s.RecipeName,
		CategoryName:      s.CategoryName,
		Month:             p.Month,
		Year:              p.Year,
		Quantity:          s.Quantity,
		Version:           p.Version,
		UnitCount:         s.UnitCount,
		Counts:            countsToResponse(s.Counts),
		RemainingToTarget: s.RemainingToTarget,
		AssembledPct:      s.AssembledPct,
		PackedPct:         s.PackedPct,
		SoldPct:           s.SoldPct,
		Units:             units,
	}
}

func periodViewToResponse(period planning.Period, plans []model.ProductionPlan, sum planning.PeriodSummary) *dto.PeriodViewResponse {
	byID := make(map[string]model.ProductionPlan, len(plans))
	for _, p := range plans {
		byID[p.ID.String()] = p
	}

	resp := &dto.PeriodViewResponse{
		Month: period.Month,
		Year:  period.Year,
		Totals: dto.PeriodTotalsResponse{
			Planned:     sum.Totals.Planned,
			Assembled:   sum.Totals.Assembled,
			Packed:      sum.Totals.Packed,
			Sold:        sum.Totals.Sold,
			NotFinished: sum.Totals.NotFinished,
		},
		Categories: make([]dto.CategoryGroupResponse, 0, len(sum.Categories)),
		Recipes:    make([]dto.RecipeTotalsResponse, 0, len(sum.Recipes)),
	}
	for _, g := range sum.Categories {
		group := dto.CategoryGroupResponse{Name: g.Name, Plans: make([]dto.PlanSummaryResponse, 0, len(g.Plans))}
		for _, s := range g.Plans {
			group.Plans = append(group.Plans, planSummaryToResponse(byID[s.PlanID.String()], s))
		}
		resp.Categories = append(resp.Categories, group)
	}
	for _, r := range sum.Recipes {
		resp.Recipes = append(resp.Recipes, dto.RecipeTotalsResponse{
			RecipeID:   r.RecipeID.String(),
			RecipeName: r.RecipeName,
			Planned:    r.Planned,
			Counts:     countsToResponse(r.Counts),
		})
	}
	return resp
}

func demandToResponse(period planning.Period, rows []planning.DemandRow) *dto.DemandResponse {
	resp := &dto.DemandResponse{
		Month:      period.Month,
		Year:       period.Year,
		ShortCount: planning.CountShort(rows),
		Rows:       make([]dto.DemandRowResponse, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Rows = append(resp.Rows, dto.DemandRowResponse{
			ProductID:         r.ProductID.String(),
			ProductName:       r.ProductName,
			Stock:             r.Stock,
			LowStockThreshold: r.LowStockThreshold,
			NeededThisMonth:   r.NeededThisMonth,
			TotalNeeded:       r.TotalNeeded,
			Balance:           r.Balance,
			Status:            string(r.Status),
			UsedBy:            r.UsedBy,
		})
	}
	return resp
}

func monthsToResponse(cells [12]planning.MonthCell) []dto.MonthCellResponse {
	out := make([]dto.MonthCellResponse, 12)
	for i, c := range cells {
		out[i] = dto.MonthCellResponse{Plan: c.Plan, Done: c.Done}
	}
	return out
}

func overviewToResponse(ov planning.AnnualOverview) *dto.AnnualOverviewResponse {
	resp := &dto.AnnualOverviewResponse{
		Year:        ov.Year,
		Rows:        make([]dto.OverviewRowResponse, 0, len(ov.Rows)),
		MonthTotals: monthsToResponse(ov.MonthTotals),
		TotalPlan:   ov.TotalPlan,
		TotalDone:   ov.TotalDone,
		Efficiency:  ov.Efficiency,
	}
	for _, r := range ov.Rows {
		resp.Rows = append(resp.Rows, dto.OverviewRowResponse{
			RecipeID:     r.RecipeID.String(),
			RecipeName:   r.RecipeName,
			CategoryName: r.CategoryName,
			Months:       monthsToResponse(r.Months),
			TotalPlan:    r.TotalPlan,
			TotalDone:    r.TotalDone,
			Efficiency:   r.Efficiency,
		})
	}
	return resp
}
