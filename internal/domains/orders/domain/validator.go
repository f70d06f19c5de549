package domain

import (
	"fmt"
	"strings"
)

// CatalogEntry is the slice of menu state the validator needs for one item.
type CatalogEntry struct {
	ID        int64
	Name      string
	Available bool
	MaxQty    int
}

// ValidationError carries every problem found in a rejected order.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// Validate checks each line against the catalog. It reports at most one
// problem per line and returns a *ValidationError listing all of them, or
// ErrEmptyOrder when there is nothing to check.
func Validate(lines []Line, catalog map[int64]CatalogEntry) error {
	if len(lines) == 0 {
		return ErrEmptyOrder
	}
	var problems []string
	for _, line := range lines {
		if problem := validateLine(line, catalog); problem != "" {
			problems = append(problems, problem)
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func validateLine(line Line, catalog map[int64]CatalogEntry) string {
	entry, ok := catalog[line.ItemID]
	if !ok {
		return fmt.Sprintf("item %d not found", line.ItemID)
	}
	if !entry.Available {
		return fmt.Sprintf("%s is currently unavailable", entry.Name)
	}
	if line.Qty < 1 {
		return fmt.Sprintf("invalid qty for %s", entry.Name)
	}
	if line.Qty > entry.MaxQty {
		return fmt.Sprintf("%s exceeds max qty (%d)", entry.Name, entry.MaxQty)
	}
	return ""
}
