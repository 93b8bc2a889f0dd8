package dto

import "github.com/shopspring/decimal"

type DemandRowResponse struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	NeededThisMonth   decimal.Decimal `json:"needed_this_month"`
	TotalNeeded       decimal.Decimal `json:"total_needed"`
	Balance           decimal.Decimal `json:"balance"`
	Status            string          `json:"status"`
	UsedBy            []string        `json:"used_by"`
}

type DemandResponse struct {
	Month      int                 `json:"month"`
	Year       int                 `json:"year"`
	ShortCount int                 `json:"short_count"`
	Rows       []DemandRowResponse `json:"rows"`
}
