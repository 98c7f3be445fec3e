package inventory

import (
	"errors"
	"fmt"
	"strings"
)

// ErrReportNotFound indicates the referenced report id does not exist.
var ErrReportNotFound = errors.New("report not found")

// ValidationError reports a rejected create/update caused by missing required
// fields or an empty item set. Nothing is mutated; the form stays editable.
type ValidationError struct {
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

func errMissingInformation() error {
	return &ValidationError{
		Title:   "Missing Information",
		Message: "Please fill all required fields: Requester Name, Campus, Import Date, and Export Date.",
	}
}

func errEmptyReport() error {
	return &ValidationError{
		Title:   "Empty Report",
		Message: "A report must contain at least one stationary item.",
	}
}

// Deficiency describes one item whose requested quantity exceeds what the
// ledger currently holds.
type Deficiency struct {
	Item      string `json:"item"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// InsufficientStockError rejects a stock-affecting transition. It always
// carries the complete deficiency list, never just the first problem.
type InsufficientStockError struct {
	Deficiencies []Deficiency
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Deficiencies))
	for _, d := range e.Deficiencies {
		parts = append(parts, fmt.Sprintf("%s (requested %d, available %d)", d.Item, d.Requested, d.Available))
	}
	return fmt.Sprintf("insufficient stock for: %s", strings.Join(parts, ", "))
}
