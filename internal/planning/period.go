package planning

import (
	"fmt"
	"time"
)

// Period is a calendar month.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Validate rejects months outside 1..12 and implausible years.
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return NewValidation("month", "must be between 1 and 12")
	}
	return ValidateYear(p.Year)
}

// ValidateYear rejects years outside 2000..9999.
func ValidateYear(year int) error {
	if year < 2000 || year > 9999 {
		return NewValidation("year", "must be between 2000 and 9999")
	}
	return nil
}

// Before reports whether p is strictly earlier than o.
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

func (p Period) String() string { return fmt.Sprintf("%04d-%02d", p.Year, p.Month) }
