package dto

// ─── Import ──────────────────────────────────────────────────────────────────

type ImportRowRequest struct {
	RecipeName string `json:"recipe_name"`
	Quantity   int    `json:"quantity"`
}

type ImportPlansRequest struct {
	Month int                `json:"month" validate:"required,min=1,max=12"`
	Year  int                `json:"year"  validate:"required,min=2000,max=9999"`
	Rows  []ImportRowRequest `json:"rows"  validate:"required,min=1,max=5000"`
}

type ImportResultResponse struct {
	SuccessCount int      `json:"success_count"`
	Created      int      `json:"created"`
	Updated      int      `json:"updated"`
	Errors       []string `json:"errors"`
}

// ─── Export ──────────────────────────────────────────────────────────────────

// ExportHeader is the column order of the plan detail export.
var ExportHeader = []string{
	"Month", "Year", "Recipe Name", "Target Quantity", "Unit Number",
	"Serial Number", "Custom ID", "Status", "Progress (Steps)", "Completed Steps",
}

type ExportRow struct {
	Month          int    `json:"Month"`
	Year           int    `json:"Year"`
	RecipeName     string `json:"Recipe Name"`
	TargetQuantity int    `json:"Target Quantity"`
	UnitNumber     int    `json:"Unit Number"`
	SerialNumber   string `json:"Serial Number"`
	CustomID       string `json:"Custom ID"`
	Status         string `json:"Status"`
	Progress       string `json:"Progress (Steps)"`
	CompletedSteps string `json:"Completed Steps"`
}

// Cells returns the row in ExportHeader order.
func (r ExportRow) Cells() []interface{} {
	return []interface{}{
		r.Month, r.Year, r.RecipeName, r.TargetQuantity, r.UnitNumber,
		r.SerialNumber, r.CustomID, r.Status, r.Progress, r.CompletedSteps,
	}
}
