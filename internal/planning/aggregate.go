package planning

import (
	"sort"

	"prodplan/internal/model"

	"github.com/google/uuid"
)

// BucketCounts holds one counter per unit; every unit lands in exactly one
// bucket, so the four fields always sum to the plan's unit count.
type BucketCounts struct {
	Sold        int
	Packed      int
	Assembled   int
	NotFinished int
}

func (b *BucketCounts) add(s UnitStatus) {
	switch s {
	case StatusSold:
		b.Sold++
	case StatusPacked:
		b.Packed++
	case StatusAssembled:
		b.Assembled++
	default:
		b.NotFinished++
	}
}

// PlanSummary is the derived view of one plan.
//
// NotFinished in Counts is unit-based. RemainingToTarget is the
// target-relative figure: quantity minus finished units, floored at zero.
type PlanSummary struct {
	PlanID            uuid.UUID
	RecipeID          uuid.UUID
	RecipeName        string
	CategoryName      string
	Quantity          int
	UnitCount         int
	Counts            BucketCounts
	RemainingToTarget int
	AssembledPct      int
	PackedPct         int
	SoldPct           int
	Units             []UnitProgress
}

// CategoryGroup lists the plans of one category in store order.
type CategoryGroup struct {
	Name  string
	Plans []PlanSummary
}

// RecipeTotals sums every plan of a recipe within the aggregated set.
type RecipeTotals struct {
	RecipeID   uuid.UUID
	RecipeName string
	Planned    int
	Counts     BucketCounts
}

// PeriodTotals are the sums across all plans in scope.
type PeriodTotals struct {
	Planned     int
	Assembled   int
	Packed      int
	Sold        int
	NotFinished int
}

// PeriodSummary is the aggregator output.
type PeriodSummary struct {
	Totals     PeriodTotals
	Categories []CategoryGroup
	Recipes    []RecipeTotals
}

// SummarizePlan buckets the plan's units and derives percentages.
func SummarizePlan(p model.ProductionPlan) PlanSummary {
	var recipe model.Recipe
	if p.Recipe != nil {
		recipe = *p.Recipe
	}
	sectionIDs := recipe.SectionIDs()

	units := make([]model.Unit, len(p.Units))
	copy(units, p.Units)
	sort.SliceStable(units, func(i, j int) bool { return units[i].UnitNumber < units[j].UnitNumber })

	s := PlanSummary{
		PlanID:       p.ID,
		RecipeID:     p.RecipeID,
		RecipeName:   recipe.Name,
		CategoryName: recipe.CategoryName(),
		Quantity:     p.Quantity,
		UnitCount:    len(units),
		Units:        make([]UnitProgress, 0, len(units)),
	}
	for _, u := range units {
		up := TrackUnit(u, sectionIDs)
		s.Counts.add(up.Status)
		s.Units = append(s.Units, up)
	}

	finished := s.Counts.Assembled + s.Counts.Packed + s.Counts.Sold
	if remaining := p.Quantity - finished; remaining > 0 {
		s.RemainingToTarget = remaining
	}
	s.AssembledPct = percent(s.Counts.Assembled, p.Quantity)
	s.PackedPct = percent(s.Counts.Packed, p.Quantity)
	s.SoldPct = percent(s.Counts.Sold, p.Quantity)
	return s
}

// Aggregate summarizes plans into period totals, category groups (sorted by
// name) and per-recipe totals (sorted by recipe name). Plans keep their
// input order inside a group.
func Aggregate(plans []model.ProductionPlan) PeriodSummary {
	out := PeriodSummary{Categories: []CategoryGroup{}, Recipes: []RecipeTotals{}}

	groupIdx := make(map[string]int)
	recipeIdx := make(map[uuid.UUID]int)
	for _, p := range plans {
		s := SummarizePlan(p)

		out.Totals.Planned += s.Quantity
		out.Totals.Assembled += s.Counts.Assembled
		out.Totals.Packed += s.Counts.Packed
		out.Totals.Sold += s.Counts.Sold
		out.Totals.NotFinished += s.Counts.NotFinished

		i, ok := groupIdx[s.CategoryName]
		if !ok {
			i = len(out.Categories)
			groupIdx[s.CategoryName] = i
			out.Categories = append(out.Categories, CategoryGroup{Name: s.CategoryName})
		}
		out.Categories[i].Plans = append(out.Categories[i].Plans, s)

		j, ok := recipeIdx[s.RecipeID]
		if !ok {
			j = len(out.Recipes)
			recipeIdx[s.RecipeID] = j
			out.Recipes = append(out.Recipes, RecipeTotals{RecipeID: s.RecipeID, RecipeName: s.RecipeName})
		}
		rt := &out.Recipes[j]
		rt.Planned += s.Quantity
		rt.Counts.Sold += s.Counts.Sold
		rt.Counts.Packed += s.Counts.Packed
		rt.Counts.Assembled += s.Counts.Assembled
		rt.Counts.NotFinished += s.Counts.NotFinished
	}

	sort.SliceStable(out.Categories, func(i, j int) bool { return out.Categories[i].Name < out.Categories[j].Name })
	sort.SliceStable(out.Recipes, func(i, j int) bool { return out.Recipes[i].RecipeName < out.Recipes[j].RecipeName })
	return out
}
