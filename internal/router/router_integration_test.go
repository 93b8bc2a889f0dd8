//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prodplan/internal/config"
	"prodplan/internal/infra"
	"prodplan/internal/middleware"
	"prodplan/internal/model"
	"prodplan/internal/router"
	"prodplan/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key"

// ── Helpers ──────────────────────────────────────────────────────────────────

func token(t *testing.T, role string) string {
	t.Helper()
	claims := middleware.JWTClaims{
		UserID:   "e2e",
		Username: "e2e-" + role,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any, tok string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	rdb    *redis.Client
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("prodplan_test"),
		tcPostgres.WithUsername("prodplan"),
		tcPostgres.WithPassword("prodplan"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })
	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })
	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:                  8000,
		Env:                   "test",
		JWTSecret:             testSecret,
		DatabaseURL:           pgURL,
		RedisURL:              rdURL,
		DemandCacheTTLSeconds: 60,
		EventsSink:            "redis",
		ImportMaxUploadMB:     1,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	srv := httptest.NewServer(router.New(cfg, db, rdb, worker.NewDispatcher(rdb)))
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, db: db, rdb: rdb}
}

func seedStove(t *testing.T, db *gorm.DB) (model.Recipe, model.Product) {
	t.Helper()
	panel := model.Product{Name: "Panel", Stock: 3}
	require.NoError(t, db.Create(&panel).Error)
	rec := model.Recipe{Name: "Stove"}
	require.NoError(t, db.Create(&rec).Error)
	require.NoError(t, db.Create(&model.Section{RecipeID: rec.ID, Name: "Frame", Position: 0}).Error)
	require.NoError(t, db.Create(&model.Ingredient{RecipeID: rec.ID, ProductID: panel.ID, Quantity: decimal.NewFromInt(1)}).Error)
	return rec, panel
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_PlanLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	rec, _ := seedStove(t, env.db)
	planner := token(t, middleware.RolePlanner)
	next := time.Now().AddDate(0, 1, 0)
	month, year := int(next.Month()), next.Year()

	// viewers cannot write
	resp := do(t, env.server, "POST", "/v1/plans", map[string]any{"recipe_id": rec.ID, "month": month, "year": year, "quantity": 2}, token(t, middleware.RoleViewer))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = do(t, env.server, "POST", "/v1/plans", map[string]any{"recipe_id": rec.ID, "month": month, "year": year, "quantity": 2}, planner)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &created)

	// demand: 2 panels needed, 3 in stock
	resp = do(t, env.server, "GET", fmt.Sprintf("/v1/demand?month=%d&year=%d", month, year), nil, planner)
	var demand struct {
		ShortCount int `json:"short_count"`
	}
	decodeJSON(t, resp, &demand)
	assert.Equal(t, 0, demand.ShortCount)

	// raising the target invalidates the cached snapshot
	resp = do(t, env.server, "PATCH", "/v1/plans/"+created.ID+"/quantity", map[string]int{"quantity": 5}, planner)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, env.server, "GET", fmt.Sprintf("/v1/demand?month=%d&year=%d", month, year), nil, planner)
	decodeJSON(t, resp, &demand)
	assert.Equal(t, 1, demand.ShortCount)

	// events were queued for the reconciliation service
	n, err := env.rdb.LLen(context.Background(), worker.QueuePlanEvents).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	// only admins delete
	resp = do(t, env.server, "DELETE", "/v1/plans/"+created.ID, nil, planner)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = do(t, env.server, "DELETE", "/v1/plans/"+created.ID, nil, token(t, middleware.RoleAdmin))
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestE2E_QuantityConflict(t *testing.T) {
	env := setupTestEnv(t)
	rec, _ := seedStove(t, env.db)
	plan := model.ProductionPlan{RecipeID: rec.ID, Month: 10, Year: 2026, Quantity: 3, Version: 1}
	require.NoError(t, env.db.Create(&plan).Error)
	at := time.Now()
	for n := 1; n <= 3; n++ {
		u := model.Unit{PlanID: plan.ID, UnitNumber: n}
		if n == 3 {
			u.AssembledAt = &at
		}
		require.NoError(t, env.db.Create(&u).Error)
	}

	resp := do(t, env.server, "PATCH", "/v1/plans/"+plan.ID.String()+"/quantity", map[string]int{"quantity": 2}, token(t, middleware.RolePlanner))
	var body struct {
		Detail       string `json:"detail"`
		BlockingUnit int    `json:"blocking_unit"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, 3, body.BlockingUnit)
	assert.Equal(t, "Blocking unit #3 already assembled", body.Detail)
}

func TestE2E_HealthAndMetrics(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/health", nil, "")
	var health map[string]any
	decodeJSON(t, resp, &health)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "connected", health["db"])

	resp = do(t, env.server, "GET", "/metrics", nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
