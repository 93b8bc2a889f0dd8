package planning_test

import (
	"time"

	"prodplan/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Fixtures ──────────────────────────────────────────────────────────────────

var assembledAt = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

func newRecipe(name, category string, sections int) model.Recipe {
	r := model.Recipe{ID: uuid.New(), Name: name}
	if category != "" {
		r.Category = &model.Category{ID: uuid.New(), Name: category}
		r.CategoryID = &r.Category.ID
	}
	for i := 0; i < sections; i++ {
		r.Sections = append(r.Sections, model.Section{ID: uuid.New(), RecipeID: r.ID, Position: i})
	}
	return r
}

func withIngredient(r model.Recipe, p *model.Product, qtyPer float64) model.Recipe {
	r.Ingredients = append(r.Ingredients, model.Ingredient{
		ID:        uuid.New(),
		RecipeID:  r.ID,
		ProductID: p.ID,
		Quantity:  decimal.NewFromFloat(qtyPer),
		Product:   p,
	})
	return r
}

func newPlan(r model.Recipe, month, year, qty int, units ...model.Unit) model.ProductionPlan {
	rr := r
	p := model.ProductionPlan{
		ID:       uuid.New(),
		RecipeID: r.ID,
		Month:    month,
		Year:     year,
		Quantity: qty,
		Version:  1,
		Recipe:   &rr,
	}
	for i := range units {
		units[i].PlanID = p.ID
	}
	p.Units = units
	return p
}

func unit(n int, completed ...string) model.Unit {
	return model.Unit{ID: uuid.New(), UnitNumber: n, Completed: completed}
}

func assembled(u model.Unit) model.Unit {
	t := assembledAt
	u.AssembledAt = &t
	return u
}

func packed(u model.Unit) model.Unit {
	u.IsPacked = true
	return u
}

func sold(u model.Unit) model.Unit {
	u.IsSold = true
	return u
}
