package planning_test

import (
	"testing"
	"time"

	"prodplan/internal/model"
	"prodplan/internal/planning"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func TestAnalyzeDemandShortage(t *testing.T) {
	bearing := &model.Product{ID: uuid.New(), Name: "Bearing", Stock: 50}
	a := withIngredient(newRecipe("Widget A", "", 1), bearing, 3)
	b := withIngredient(newRecipe("Widget B", "", 1), bearing, 3)
	plans := []model.ProductionPlan{newPlan(a, 10, 2026, 10), newPlan(b, 10, 2026, 10)}

	rows := planning.AnalyzeDemand(planning.Period{Month: 10, Year: 2026}, now, plans, []model.Recipe{a, b})

	require.Len(t, rows, 1)
	row := rows[0]
	assert.True(t, decimal.NewFromInt(60).Equal(row.NeededThisMonth))
	assert.True(t, row.TotalNeeded.Equal(row.NeededThisMonth))
	assert.True(t, decimal.NewFromInt(-10).Equal(row.Balance))
	assert.Equal(t, planning.DemandShort, row.Status)
	assert.Equal(t, []string{"Widget A", "Widget B"}, row.UsedBy)
}

func TestAnalyzeDemandOrdering(t *testing.T) {
	bolt := &model.Product{ID: uuid.New(), Name: "Bolt", Stock: 1000}
	axle := &model.Product{ID: uuid.New(), Name: "Axle", Stock: 100}
	gear := &model.Product{ID: uuid.New(), Name: "Gear", Stock: 0}
	belt := &model.Product{ID: uuid.New(), Name: "Belt", Stock: 1}
	r := newRecipe("Drive", "", 0)
	r = withIngredient(r, bolt, 4)
	r = withIngredient(r, axle, 2)
	r = withIngredient(r, gear, 1)
	r = withIngredient(r, belt, 0.5)

	rows := planning.AnalyzeDemand(planning.Period{Month: 11, Year: 2026}, now,
		[]model.ProductionPlan{newPlan(r, 11, 2026, 5)}, []model.Recipe{r})

	require.Len(t, rows, 4)
	names := []string{rows[0].ProductName, rows[1].ProductName, rows[2].ProductName, rows[3].ProductName}
	assert.Equal(t, []string{"Belt", "Gear", "Axle", "Bolt"}, names)
	assert.Equal(t, planning.DemandShort, rows[0].Status)
	assert.True(t, decimal.RequireFromString("2.5").Equal(rows[0].NeededThisMonth))
	assert.Equal(t, planning.DemandSafe, rows[2].Status)
	assert.Equal(t, 2, planning.CountShort(rows))
}

func TestAnalyzeDemandStatusMatchesBalance(t *testing.T) {
	exact := &model.Product{ID: uuid.New(), Name: "Exact", Stock: 20}
	r := withIngredient(newRecipe("Frame", "", 0), exact, 2)

	rows := planning.AnalyzeDemand(planning.Period{Month: 10, Year: 2026}, now,
		[]model.ProductionPlan{newPlan(r, 10, 2026, 10)}, []model.Recipe{r})

	require.Len(t, rows, 1)
	assert.True(t, rows[0].Balance.IsZero())
	assert.Equal(t, planning.DemandSafe, rows[0].Status)
}

func TestAnalyzeDemandOmitsUnreferencedProducts(t *testing.T) {
	used := &model.Product{ID: uuid.New(), Name: "Used", Stock: 5}
	unused := &model.Product{ID: uuid.New(), Name: "Unused", Stock: 5}
	planned := withIngredient(newRecipe("Planned", "", 0), used, 1)
	unplanned := withIngredient(newRecipe("Unplanned", "", 0), unused, 1)

	rows := planning.AnalyzeDemand(planning.Period{Month: 12, Year: 2026}, now,
		[]model.ProductionPlan{newPlan(planned, 12, 2026, 1)}, []model.Recipe{planned, unplanned})

	require.Len(t, rows, 1)
	assert.Equal(t, "Used", rows[0].ProductName)
}

func TestAnalyzeDemandPastPeriodIsEmpty(t *testing.T) {
	p := &model.Product{ID: uuid.New(), Name: "Bearing", Stock: 1}
	r := withIngredient(newRecipe("Widget", "", 0), p, 1)

	rows := planning.AnalyzeDemand(planning.Period{Month: 9, Year: 2026}, now,
		[]model.ProductionPlan{newPlan(r, 9, 2026, 100)}, []model.Recipe{r})

	assert.Empty(t, rows)
	assert.NotNil(t, rows)
}

func TestAnalyzeDemandEmptyInput(t *testing.T) {
	assert.Empty(t, planning.AnalyzeDemand(planning.Period{Month: 1, Year: 2027}, now, nil, nil))
}
