package planning

import (
	"sort"
	"time"

	"prodplan/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DemandStatus classifies a component's coverage.
type DemandStatus string

const (
	DemandShort DemandStatus = "SHORT"
	DemandSafe  DemandStatus = "SAFE"
)

// DemandRow is the requirement for one component product in the target month.
// TotalNeeded equals NeededThisMonth: the analysis covers a single period and
// carries no backlog from earlier months.
type DemandRow struct {
	ProductID         uuid.UUID
	ProductName       string
	Stock             int
	LowStockThreshold int
	NeededThisMonth   decimal.Decimal
	TotalNeeded       decimal.Decimal
	Balance           decimal.Decimal
	Status            DemandStatus
	UsedBy            []string
}

// AnalyzeDemand explodes each plan's recipe ingredients against its target
// quantity and compares the accumulated need with current stock. Periods
// before the month containing now yield an empty result.
//
// recipes must carry Ingredients with Product preloaded; ingredients whose
// product is missing are skipped.
func AnalyzeDemand(target Period, now time.Time, plans []model.ProductionPlan, recipes []model.Recipe) []DemandRow {
	rows := []DemandRow{}
	if target.Before(PeriodOf(now)) {
		return rows
	}

	byID := make(map[uuid.UUID]model.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}

	idx := make(map[uuid.UUID]int)
	usedBy := make(map[uuid.UUID]map[string]struct{})
	for _, p := range plans {
		r, ok := byID[p.RecipeID]
		if !ok {
			continue
		}
		qty := decimal.NewFromInt(int64(p.Quantity))
		for _, ing := range r.Ingredients {
			if ing.Product == nil {
				continue
			}
			i, seen := idx[ing.ProductID]
			if !seen {
				i = len(rows)
				idx[ing.ProductID] = i
				rows = append(rows, DemandRow{
					ProductID:         ing.ProductID,
					ProductName:       ing.Product.Name,
					Stock:             ing.Product.Stock,
					LowStockThreshold: ing.Product.LowStockThreshold,
					NeededThisMonth:   decimal.Zero,
				})
				usedBy[ing.ProductID] = make(map[string]struct{})
			}
			rows[i].NeededThisMonth = rows[i].NeededThisMonth.Add(ing.Quantity.Mul(qty))
			usedBy[ing.ProductID][r.Name] = struct{}{}
		}
	}

	for i := range rows {
		row := &rows[i]
		row.TotalNeeded = row.NeededThisMonth
		row.Balance = decimal.NewFromInt(int64(row.Stock)).Sub(row.TotalNeeded)
		row.Status = DemandSafe
		if row.Balance.IsNegative() {
			row.Status = DemandShort
		}
		names := make([]string, 0, len(usedBy[row.ProductID]))
		for n := range usedBy[row.ProductID] {
			names = append(names, n)
		}
		sort.Strings(names)
		row.UsedBy = names
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Status != rows[j].Status {
			return rows[i].Status == DemandShort
		}
		return rows[i].ProductName < rows[j].ProductName
	})
	return rows
}

// CountShort returns the number of SHORT rows.
func CountShort(rows []DemandRow) int {
	n := 0
	for _, r := range rows {
		if r.Status == DemandShort {
			n++
		}
	}
	return n
}
