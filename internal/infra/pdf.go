package infra

// pdf.go: annual production overview report using go-pdf/fpdf.
// Landscape A4 with:
//   - Title with year and generation timestamp
//   - One row per recipe: category, plan/done per month, totals, efficiency
//   - Bold grand-total row

import (
	"fmt"
	"io"
	"time"

	"prodplan/internal/planning"

	"github.com/go-pdf/fpdf"
)

var monthAbbr = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// WriteOverviewPDF renders ov as a PDF report into w.
func WriteOverviewPDF(w io.Writer, ov planning.AnnualOverview, generatedAt time.Time) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(8, 8, 8)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 16

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, fmt.Sprintf("Production overview %d", ov.Year), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Generated "+generatedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Columns: recipe | category | 12 months | total | eff ─────────────────
	recipeW := contentW * 0.16
	categoryW := contentW * 0.10
	totalW := contentW * 0.07
	effW := contentW * 0.05
	monthW := (contentW - recipeW - categoryW - totalW - effW) / 12

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(recipeW, 6, "Recipe", "B", 0, "L", false, 0, "")
	pdf.CellFormat(categoryW, 6, "Category", "B", 0, "L", false, 0, "")
	for _, m := range monthAbbr {
		pdf.CellFormat(monthW, 6, m, "B", 0, "C", false, 0, "")
	}
	pdf.CellFormat(totalW, 6, "Done/Plan", "B", 0, "C", false, 0, "")
	pdf.CellFormat(effW, 6, "Eff.", "B", 1, "R", false, 0, "")

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	for _, row := range ov.Rows {
		pdf.CellFormat(recipeW, 5, truncate(row.RecipeName, 28), "", 0, "L", false, 0, "")
		pdf.CellFormat(categoryW, 5, truncate(row.CategoryName, 16), "", 0, "L", false, 0, "")
		for _, c := range row.Months {
			pdf.CellFormat(monthW, 5, cellText(c), "", 0, "C", false, 0, "")
		}
		pdf.CellFormat(totalW, 5, fmt.Sprintf("%d/%d", row.TotalDone, row.TotalPlan), "", 0, "C", false, 0, "")
		pdf.CellFormat(effW, 5, fmt.Sprintf("%d%%", row.Efficiency), "", 1, "R", false, 0, "")
	}

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(recipeW+categoryW, 6, "Total", "T", 0, "L", false, 0, "")
	for _, c := range ov.MonthTotals {
		pdf.CellFormat(monthW, 6, cellText(c), "T", 0, "C", false, 0, "")
	}
	pdf.CellFormat(totalW, 6, fmt.Sprintf("%d/%d", ov.TotalDone, ov.TotalPlan), "T", 0, "C", false, 0, "")
	pdf.CellFormat(effW, 6, fmt.Sprintf("%d%%", ov.Efficiency), "T", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write: %w", err)
	}
	return nil
}

func cellText(c planning.MonthCell) string {
	if c.Plan == 0 && c.Done == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d", c.Done, c.Plan)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}
