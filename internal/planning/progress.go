package planning

import (
	"math"
	"strconv"

	"prodplan/internal/model"
)

// UnitStatus is the display lifecycle state of a unit.
type UnitStatus string

const (
	StatusPending   UnitStatus = "PENDING"
	StatusAssembled UnitStatus = "ASSEMBLED"
	StatusPacked    UnitStatus = "PACKED"
	StatusSold      UnitStatus = "SOLD"
)

// StatusOf resolves the unit's flags by priority sold > packed > assembled.
func StatusOf(u model.Unit) UnitStatus {
	switch {
	case u.IsSold:
		return StatusSold
	case u.IsPacked:
		return StatusPacked
	case u.AssembledAt != nil:
		return StatusAssembled
	default:
		return StatusPending
	}
}

// UnitProgress is the read-time view of one unit.
type UnitProgress struct {
	UnitNumber     int
	Progress       int
	Status         UnitStatus
	ValidCompleted []string
	TotalSections  int
}

// Steps renders the "x/y" progress column.
func (p UnitProgress) Steps() string {
	return strconv.Itoa(len(p.ValidCompleted)) + "/" + strconv.Itoa(p.TotalSections)
}

// ValidCompleted intersects the stored completion ids with the recipe's
// current section ids. Order follows sectionIDs; stale ids are dropped.
func ValidCompleted(completed, sectionIDs []string) []string {
	if len(completed) == 0 || len(sectionIDs) == 0 {
		return []string{}
	}
	done := make(map[string]struct{}, len(completed))
	for _, id := range completed {
		done[id] = struct{}{}
	}
	valid := make([]string, 0, len(completed))
	for _, id := range sectionIDs {
		if _, ok := done[id]; ok {
			valid = append(valid, id)
			delete(done, id)
		}
	}
	return valid
}

// TrackUnit derives progress and status for u against the recipe's
// current sections.
func TrackUnit(u model.Unit, sectionIDs []string) UnitProgress {
	valid := ValidCompleted(u.Completed, sectionIDs)
	total := len(sectionIDs)
	progress := 0
	if total > 0 {
		progress = int(math.Round(100 * float64(len(valid)) / float64(total)))
		if progress > 100 {
			progress = 100
		}
	}
	return UnitProgress{
		UnitNumber:     u.UnitNumber,
		Progress:       progress,
		Status:         StatusOf(u),
		ValidCompleted: valid,
		TotalSections:  total,
	}
}

// percent returns round(100*n/d), or 0 when d is not positive.
func percent(n, d int) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(n) / float64(d)))
}
