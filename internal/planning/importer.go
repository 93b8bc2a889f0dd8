package planning

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"prodplan/internal/model"

	"github.com/google/uuid"
)

// ImportRow is one {recipeName, quantity} line from a tabular source.
// Row is the 1-based source row used in error messages.
type ImportRow struct {
	Row             int
	RecipeName      string
	Quantity        int
	// QuantityInvalid is set by table parsers when the cell is not a whole number.
	QuantityInvalid bool
}

// ResolvedRow is an ImportRow after validation against the catalog.
type ResolvedRow struct {
	ImportRow
	RecipeID uuid.UUID
	Valid    bool
	Errors   []string
}

// ErrorLines renders row errors as "Row N: message".
func (r ResolvedRow) ErrorLines() []string {
	lines := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		lines = append(lines, fmt.Sprintf("Row %d: %s", r.Row, e))
	}
	return lines
}

var (
	recipeHeaderKeys   = []string{"recipe", "name"}
	quantityHeaderKeys = []string{"quantity", "qty", "target"}
)

func headerMatches(header string, keys []string) bool {
	h := strings.ToLower(strings.TrimSpace(header))
	for _, k := range keys {
		if strings.Contains(h, k) {
			return true
		}
	}
	return false
}

// DetectImportColumns locates the recipe and quantity columns by
// case-insensitive substring match on the header text.
func DetectImportColumns(headers []string) (recipeCol, qtyCol int, err error) {
	recipeCol, qtyCol = -1, -1
	for i, h := range headers {
		switch {
		case recipeCol < 0 && headerMatches(h, recipeHeaderKeys):
			recipeCol = i
		case qtyCol < 0 && headerMatches(h, quantityHeaderKeys):
			qtyCol = i
		}
	}
	if recipeCol < 0 {
		return -1, -1, NewValidation("columns", `missing recipe column (header containing "recipe" or "name")`)
	}
	if qtyCol < 0 {
		return -1, -1, NewValidation("columns", `missing quantity column (header containing "quantity", "qty" or "target")`)
	}
	return recipeCol, qtyCol, nil
}

// RowsFromTable converts a header-first table into import rows. Rows whose
// recipe cell is blank are dropped.
func RowsFromTable(table [][]string) ([]ImportRow, error) {
	if len(table) == 0 {
		return nil, NewValidation("file", "no header row")
	}
	recipeCol, qtyCol, err := DetectImportColumns(table[0])
	if err != nil {
		return nil, err
	}
	rows := make([]ImportRow, 0, len(table)-1)
	for i, cells := range table[1:] {
		name := strings.TrimSpace(cell(cells, recipeCol))
		if name == "" {
			continue
		}
		qty, ok := parseQuantity(cell(cells, qtyCol))
		rows = append(rows, ImportRow{
			Row:             i + 2,
			RecipeName:      name,
			Quantity:        qty,
			QuantityInvalid: !ok,
		})
	}
	return rows, nil
}

func cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

// parseQuantity accepts integers and integral decimals ("12", "12.0").
func parseQuantity(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// ResolveImportRows validates each row on its own: a bad row never affects
// the others. Names match recipes exactly. Once a valid row has claimed a
// recipe, later rows naming it are rejected as duplicates.
func ResolveImportRows(rows []ImportRow, recipesByName map[string]model.Recipe) []ResolvedRow {
	out := make([]ResolvedRow, 0, len(rows))
	firstSeen := make(map[string]int)
	for _, r := range rows {
		res := ResolvedRow{ImportRow: r, Errors: []string{}}
		name := strings.TrimSpace(r.RecipeName)
		res.RecipeName = name

		if name == "" {
			res.Errors = append(res.Errors, "Recipe name is required")
		} else if recipe, ok := recipesByName[name]; ok {
			res.RecipeID = recipe.ID
		} else {
			res.Errors = append(res.Errors, "Recipe not found: "+name)
		}

		switch {
		case r.QuantityInvalid:
			res.Errors = append(res.Errors, "Quantity must be a whole number")
		case r.Quantity <= 0:
			res.Errors = append(res.Errors, "Quantity must be > 0")
		}

		// Only a row that would otherwise commit claims its recipe.
		if name != "" {
			if first, dup := firstSeen[name]; dup {
				res.Errors = append(res.Errors, fmt.Sprintf("Duplicate recipe in file: %s (first on row %d)", name, first))
			} else if len(res.Errors) == 0 {
				firstSeen[name] = r.Row
			}
		}

		res.Valid = len(res.Errors) == 0
		out = append(out, res)
	}
	return out
}
