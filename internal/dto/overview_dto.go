package dto

type MonthCellResponse struct {
	Plan int `json:"plan"`
	Done int `json:"done"`
}

type OverviewRowResponse struct {
	RecipeID     string              `json:"recipe_id"`
	RecipeName   string              `json:"recipe_name"`
	CategoryName string              `json:"category_name"`
	Months       []MonthCellResponse `json:"months"`
	TotalPlan    int                 `json:"total_plan"`
	TotalDone    int                 `json:"total_done"`
	Efficiency   int                 `json:"efficiency"`
}

type AnnualOverviewResponse struct {
	Year        int                   `json:"year"`
	Rows        []OverviewRowResponse `json:"rows"`
	MonthTotals []MonthCellResponse   `json:"month_totals"`
	TotalPlan   int                   `json:"total_plan"`
	TotalDone   int                   `json:"total_done"`
	Efficiency  int                   `json:"efficiency"`
}
