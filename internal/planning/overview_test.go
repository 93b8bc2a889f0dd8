package planning_test

import (
	"testing"

	"prodplan/internal/model"
	"prodplan/internal/planning"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileAnnualOverview(t *testing.T) {
	widget := newRecipe("Widget", "Tools", 1)
	anvil := newRecipe("Anvil", "Tools", 1)
	boat := newRecipe("Boat", "Marine", 1)
	idle := newRecipe("Idle", "Aaa", 1)

	plans := []model.ProductionPlan{
		newPlan(widget, 1, 2026, 10, assembled(unit(1)), sold(packed(assembled(unit(2)))), packed(unit(3))),
		newPlan(widget, 2, 2026, 5, assembled(unit(1))),
		newPlan(anvil, 12, 2026, 4),
		newPlan(boat, 6, 2026, 3, assembled(unit(1)), assembled(unit(2)), assembled(unit(3))),
		newPlan(idle, 6, 2025, 9, assembled(unit(1))),
	}

	ov := planning.CompileAnnualOverview(2026, []model.Recipe{widget, anvil, boat, idle}, plans)

	require.Len(t, ov.Rows, 3)
	assert.Equal(t, "Boat", ov.Rows[0].RecipeName)
	assert.Equal(t, "Anvil", ov.Rows[1].RecipeName)
	assert.Equal(t, "Widget", ov.Rows[2].RecipeName)

	w := ov.Rows[2]
	assert.Equal(t, planning.MonthCell{Plan: 10, Done: 2}, w.Months[0])
	assert.Equal(t, planning.MonthCell{Plan: 5, Done: 1}, w.Months[1])
	assert.Equal(t, planning.MonthCell{}, w.Months[5])
	assert.Equal(t, 15, w.TotalPlan)
	assert.Equal(t, 3, w.TotalDone)
	assert.Equal(t, 20, w.Efficiency)

	assert.Equal(t, 100, ov.Rows[0].Efficiency)
	assert.Equal(t, 0, ov.Rows[1].Efficiency)

	assert.Equal(t, 22, ov.TotalPlan)
	assert.Equal(t, 6, ov.TotalDone)
	assert.Equal(t, planning.MonthCell{Plan: 3, Done: 3}, ov.MonthTotals[5])
}

func TestCompileAnnualOverviewExcludesRecipesWithoutPlans(t *testing.T) {
	a := newRecipe("A", "", 0)
	b := newRecipe("B", "", 0)

	ov := planning.CompileAnnualOverview(2027, []model.Recipe{a, b}, []model.ProductionPlan{newPlan(a, 3, 2027, 1)})

	require.Len(t, ov.Rows, 1)
	assert.Equal(t, "A", ov.Rows[0].RecipeName)
	assert.Equal(t, model.UncategorizedName, ov.Rows[0].CategoryName)
}

func TestCompileAnnualOverviewEmpty(t *testing.T) {
	ov := planning.CompileAnnualOverview(2026, nil, nil)
	assert.Empty(t, ov.Rows)
	assert.Equal(t, 0, ov.Efficiency)
}
