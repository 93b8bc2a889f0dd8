package infra

import (
	"fmt"

	"prodplan/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, migrates the
// planning schema and applies the constraints GORM tags cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates/updates all tables and then applies schema patches.
// Safe to re-run.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Recipe{},
		&model.Section{},
		&model.Ingredient{},
		&model.ProductionPlan{},
		&model.Unit{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM AutoMigrate cannot handle
// on its own (check constraints, partial indexes). Each statement is guarded
// by an existence check.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"plan quantity positive", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_production_plans_quantity') THEN
    ALTER TABLE production_plans ADD CONSTRAINT chk_production_plans_quantity CHECK (quantity > 0);
  END IF;
END $$`},
		{"plan month range", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_production_plans_month') THEN
    ALTER TABLE production_plans ADD CONSTRAINT chk_production_plans_month CHECK (month BETWEEN 1 AND 12);
  END IF;
END $$`},
		{"unit number unique per plan", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_units_plan_number') THEN
    CREATE UNIQUE INDEX idx_units_plan_number ON units (plan_id, unit_number);
  END IF;
END $$`},
		{"assembled units by plan", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_units_assembled') THEN
    CREATE INDEX idx_units_assembled ON units (plan_id) WHERE assembled_at IS NOT NULL;
  END IF;
END $$`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
