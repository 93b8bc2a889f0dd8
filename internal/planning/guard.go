package planning

import (
	"fmt"
	"sort"
	"strings"

	"prodplan/internal/model"
)

// ValidateQuantity rejects non-positive plan quantities.
func ValidateQuantity(qty int) error {
	if qty <= 0 {
		return NewValidation("quantity", "Quantity must be > 0")
	}
	return nil
}

// CheckQuantityChange is the first phase of a quantity edit. It fails with a
// ConflictError naming the lowest-numbered unit beyond proposed that has
// already left PENDING. The caller commits only under the store's plan lock.
func CheckQuantityChange(units []model.Unit, proposed int) error {
	if err := ValidateQuantity(proposed); err != nil {
		return err
	}
	beyond := make([]model.Unit, 0)
	for _, u := range units {
		if u.UnitNumber > proposed {
			beyond = append(beyond, u)
		}
	}
	sort.Slice(beyond, func(i, j int) bool { return beyond[i].UnitNumber < beyond[j].UnitNumber })
	for _, u := range beyond {
		status := StatusOf(u)
		if status == StatusPending {
			continue
		}
		return &ConflictError{
			UnitNumber: u.UnitNumber,
			Reason:     fmt.Sprintf("Blocking unit #%d already %s", u.UnitNumber, strings.ToLower(string(status))),
		}
	}
	return nil
}
