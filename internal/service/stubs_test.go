package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"prodplan/internal/model"
	"prodplan/internal/repository"
	"prodplan/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory PlanRepository stub ────────────────────────────────────────────

type stubPlanRepo struct {
	plans   map[uuid.UUID]*model.ProductionPlan
	order   []uuid.UUID
	catalog *stubCatalogRepo

	// staleOnce makes the next guarded write lose its version CAS.
	staleOnce bool
	writes    int
}

var _ repository.PlanRepository = (*stubPlanRepo)(nil)

func newStubPlanRepo(catalog *stubCatalogRepo) *stubPlanRepo {
	return &stubPlanRepo{plans: make(map[uuid.UUID]*model.ProductionPlan), catalog: catalog}
}

func (r *stubPlanRepo) detail(p *model.ProductionPlan) model.ProductionPlan {
	out := *p
	out.Units = append([]model.Unit(nil), p.Units...)
	sort.Slice(out.Units, func(i, j int) bool { return out.Units[i].UnitNumber < out.Units[j].UnitNumber })
	if rec, ok := r.catalog.recipes[p.RecipeID]; ok {
		cp := *rec
		out.Recipe = &cp
	}
	return out
}

// newestFirst mirrors the store's created_at DESC ordering.
func (r *stubPlanRepo) newestFirst() []*model.ProductionPlan {
	out := make([]*model.ProductionPlan, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		if p, ok := r.plans[r.order[i]]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (r *stubPlanRepo) FindByPeriod(_ context.Context, month, year int) ([]model.ProductionPlan, error) {
	var out []model.ProductionPlan
	for _, p := range r.newestFirst() {
		if p.Month == month && p.Year == year {
			out = append(out, r.detail(p))
		}
	}
	return out, nil
}

func (r *stubPlanRepo) FindByYear(_ context.Context, year int) ([]model.ProductionPlan, error) {
	var out []model.ProductionPlan
	for _, p := range r.newestFirst() {
		if p.Year == year {
			cp := *p
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *stubPlanRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProductionPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	d := r.detail(p)
	return &d, nil
}

func (r *stubPlanRepo) FindByRecipePeriod(_ context.Context, recipeID uuid.UUID, month, year int) (*model.ProductionPlan, error) {
	for _, p := range r.plans {
		if p.RecipeID == recipeID && p.Month == month && p.Year == year {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPlanRepo) Create(_ context.Context, p *model.ProductionPlan) error {
	for _, existing := range r.plans {
		if existing.RecipeID == p.RecipeID && existing.Month == p.Month && existing.Year == p.Year {
			return gorm.ErrDuplicatedKey
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.plans[p.ID] = &cp
	r.order = append(r.order, p.ID)
	r.writes++
	return nil
}

func (r *stubPlanRepo) UpdateQuantityGuarded(_ context.Context, id uuid.UUID, qty int, check func(p *model.ProductionPlan) error) (*model.ProductionPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	locked := r.detail(p)
	if err := check(&locked); err != nil {
		return nil, err
	}
	if r.staleOnce {
		r.staleOnce = false
		return nil, repository.ErrStaleVersion
	}
	p.Quantity = qty
	p.Version++
	r.writes++
	out := r.detail(p)
	return &out, nil
}

func (r *stubPlanRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.plans[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.plans, id)
	r.writes++
	return nil
}

// add stores a plan with the given units and returns its id.
func (r *stubPlanRepo) add(recipeID uuid.UUID, month, year, qty int, units ...model.Unit) uuid.UUID {
	p := &model.ProductionPlan{ID: uuid.New(), RecipeID: recipeID, Month: month, Year: year, Quantity: qty, Version: 1}
	for i := range units {
		units[i].PlanID = p.ID
	}
	p.Units = units
	r.plans[p.ID] = p
	r.order = append(r.order, p.ID)
	return p.ID
}

// ── In-memory CatalogRepository stub ─────────────────────────────────────────

type stubCatalogRepo struct {
	recipes map[uuid.UUID]*model.Recipe
}

var _ repository.CatalogRepository = (*stubCatalogRepo)(nil)

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{recipes: make(map[uuid.UUID]*model.Recipe)}
}

func (r *stubCatalogRepo) ListRecipes(_ context.Context) ([]model.Recipe, error) {
	out := make([]model.Recipe, 0, len(r.recipes))
	for _, rec := range r.recipes {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubCatalogRepo) FindRecipeByID(_ context.Context, id uuid.UUID) (*model.Recipe, error) {
	rec, ok := r.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *stubCatalogRepo) FindRecipesByNames(_ context.Context, names []string) ([]model.Recipe, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []model.Recipe
	for _, rec := range r.recipes {
		if want[rec.Name] {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *stubCatalogRepo) FindRecipesWithIngredients(_ context.Context, ids []uuid.UUID) ([]model.Recipe, error) {
	var out []model.Recipe
	for _, id := range ids {
		if rec, ok := r.recipes[id]; ok {
			out = append(out, *rec)
		}
	}
	return out, nil
}

// addRecipe registers a recipe with the named sections, in order.
func (r *stubCatalogRepo) addRecipe(name, category string, sections ...string) *model.Recipe {
	rec := &model.Recipe{ID: uuid.New(), Name: name}
	if category != "" {
		id := uuid.New()
		rec.CategoryID = &id
		rec.Category = &model.Category{ID: id, Name: category}
	}
	for i, s := range sections {
		rec.Sections = append(rec.Sections, model.Section{ID: uuid.New(), RecipeID: rec.ID, Name: s, Position: i})
	}
	r.recipes[rec.ID] = rec
	return rec
}

func addIngredient(rec *model.Recipe, product *model.Product, perUnit string) {
	rec.Ingredients = append(rec.Ingredients, model.Ingredient{
		ID:        uuid.New(),
		RecipeID:  rec.ID,
		ProductID: product.ID,
		Quantity:  decimal.RequireFromString(perUnit),
		Product:   product,
	})
}

// ── Recording event publisher ────────────────────────────────────────────────

type recordingPublisher struct {
	mu     sync.Mutex
	events []worker.PlanEvent
	err    error
}

var _ worker.Publisher = (*recordingPublisher)(nil)

func (p *recordingPublisher) Publish(_ context.Context, ev worker.PlanEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

// ── Unit builders ────────────────────────────────────────────────────────────

func pendingUnit(n int, completed ...string) model.Unit {
	return model.Unit{ID: uuid.New(), UnitNumber: n, Completed: completed}
}

func assembledUnit(n int) model.Unit {
	u := pendingUnit(n)
	at := time.Date(2026, 10, 3, 9, 0, 0, 0, time.UTC)
	u.AssembledAt = &at
	return u
}

func packedUnit(n int) model.Unit {
	u := assembledUnit(n)
	u.IsPacked = true
	return u
}

func soldUnit(n int) model.Unit {
	u := packedUnit(n)
	u.IsSold = true
	return u
}
