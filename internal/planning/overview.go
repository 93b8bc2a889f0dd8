package planning

import (
	"sort"

	"prodplan/internal/model"

	"github.com/google/uuid"
)

// MonthCell is the planned quantity and assembled unit count of one month.
type MonthCell struct {
	Plan int
	Done int
}

// OverviewRow is one recipe across the twelve months of a year.
type OverviewRow struct {
	RecipeID     uuid.UUID
	RecipeName   string
	CategoryName string
	Months       [12]MonthCell
	TotalPlan    int
	TotalDone    int
	Efficiency   int
}

// AnnualOverview is the recipe x month matrix for one year.
type AnnualOverview struct {
	Year        int
	Rows        []OverviewRow
	MonthTotals [12]MonthCell
	TotalPlan   int
	TotalDone   int
	Efficiency  int
}

// CompileAnnualOverview builds one row per recipe that has at least one plan
// in year. A unit counts as done once assembled, whatever happened after.
// Rows are ordered by category name, then recipe name.
func CompileAnnualOverview(year int, recipes []model.Recipe, plans []model.ProductionPlan) AnnualOverview {
	out := AnnualOverview{Year: year, Rows: []OverviewRow{}}

	catalog := make(map[uuid.UUID]model.Recipe, len(recipes))
	for _, r := range recipes {
		catalog[r.ID] = r
	}

	idx := make(map[uuid.UUID]int)
	for _, p := range plans {
		if p.Year != year || p.Month < 1 || p.Month > 12 {
			continue
		}
		i, ok := idx[p.RecipeID]
		if !ok {
			r, known := catalog[p.RecipeID]
			if !known && p.Recipe != nil {
				r = *p.Recipe
			}
			i = len(out.Rows)
			idx[p.RecipeID] = i
			out.Rows = append(out.Rows, OverviewRow{
				RecipeID:     p.RecipeID,
				RecipeName:   r.Name,
				CategoryName: r.CategoryName(),
			})
		}

		done := 0
		for _, u := range p.Units {
			if u.AssembledAt != nil {
				done++
			}
		}
		row := &out.Rows[i]
		cell := &row.Months[p.Month-1]
		cell.Plan += p.Quantity
		cell.Done += done
		row.TotalPlan += p.Quantity
		row.TotalDone += done
		out.MonthTotals[p.Month-1].Plan += p.Quantity
		out.MonthTotals[p.Month-1].Done += done
	}

	for i := range out.Rows {
		row := &out.Rows[i]
		row.Efficiency = percent(row.TotalDone, row.TotalPlan)
		out.TotalPlan += row.TotalPlan
		out.TotalDone += row.TotalDone
	}
	out.Efficiency = percent(out.TotalDone, out.TotalPlan)

	sort.SliceStable(out.Rows, func(i, j int) bool {
		a, b := out.Rows[i], out.Rows[j]
		if a.CategoryName != b.CategoryName {
			return a.CategoryName < b.CategoryName
		}
		return a.RecipeName < b.RecipeName
	})
	return out
}
