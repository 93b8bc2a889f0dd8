package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreatePlanRequest struct {
	RecipeID string `json:"recipe_id" validate:"required,uuid"`
	Month    int    `json:"month"     validate:"required,min=1,max=12"`
	Year     int    `json:"year"      validate:"required,min=2000,max=9999"`
	Quantity int    `json:"quantity"`
}

// UpdateQuantityRequest carries no validator tag on Quantity: a non-positive
// value is reported by the quantity guard with its domain message.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// PeriodQuery binds ?month=&year=.
type PeriodQuery struct {
	Month int `form:"month" validate:"required,min=1,max=12"`
	Year  int `form:"year"  validate:"required,min=2000,max=9999"`
}

type QuantityCheckQuery struct {
	Quantity int `form:"quantity"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UnitProgressResponse struct {
	UnitNumber        int      `json:"unit_number"`
	ProductIdentifier string   `json:"product_identifier,omitempty"`
	Status            string   `json:"status"`
	Progress          int      `json:"progress"`
	Steps             string   `json:"steps"`
	ValidCompleted    []string `json:"valid_completed"`
}

type BucketCountsResponse struct {
	Sold        int `json:"sold"`
	Packed      int `json:"packed"`
	Assembled   int `json:"assembled"`
	NotFinished int `json:"not_finished"`
}

type PlanSummaryResponse struct {
	ID                string                 `json:"id"`
	RecipeID          string                 `json:"recipe_id"`
	RecipeName        string                 `json:"recipe_name"`
	CategoryName      string                 `json:"category_name"`
	Month             int                    `json:"month"`
	Year              int                    `json:"year"`
	Quantity          int                    `json:"quantity"`
	Version           int                    `json:"version"`
	UnitCount         int                    `json:"unit_count"`
	Counts            BucketCountsResponse   `json:"counts"`
	RemainingToTarget int                    `json:"remaining_to_target"`
	AssembledPct      int                    `json:"assembled_pct"`
	PackedPct         int                    `json:"packed_pct"`
	SoldPct           int                    `json:"sold_pct"`
	Units             []UnitProgressResponse `json:"units,omitempty"`
}

type CategoryGroupResponse struct {
	Name  string                `json:"name"`
	Plans []PlanSummaryResponse `json:"plans"`
}

type RecipeTotalsResponse struct {
	RecipeID   string               `json:"recipe_id"`
	RecipeName string               `json:"recipe_name"`
	Planned    int                  `json:"planned"`
	Counts     BucketCountsResponse `json:"counts"`
}

type PeriodTotalsResponse struct {
	Planned     int `json:"planned"`
	Assembled   int `json:"assembled"`
	Packed      int `json:"packed"`
	Sold        int `json:"sold"`
	NotFinished int `json:"not_finished"`
}

type PeriodViewResponse struct {
	Month      int                     `json:"month"`
	Year       int                     `json:"year"`
	Totals     PeriodTotalsResponse    `json:"totals"`
	Categories []CategoryGroupResponse `json:"categories"`
	Recipes    []RecipeTotalsResponse  `json:"recipes"`
}

type QuantityCheckResponse struct {
	Allowed      bool   `json:"allowed"`
	Quantity     int    `json:"quantity"`
	BlockingUnit int    `json:"blocking_unit,omitempty"`
	Reason       string `json:"reason,omitempty"`
}
