package models

// Status tracks whether a report's items have physically left the stock room.
type Status string

const (
	// StatusProcess marks a pending requisition with no stock effect yet.
	StatusProcess Status = "Process"
	// StatusDone marks a disbursed requisition reflected in the ledger.
	StatusDone Status = "Done"
)

// Report is a single stationary requisition: who requested which items,
// for which campus, and over which date range.
type Report struct {
	ID            string         `json:"id"`
	RequesterName string         `json:"requesterName"`
	Campus        string         `json:"campus"`
	ImportDate    string         `json:"importDate"`
	ExportDate    string         `json:"exportDate"`
	Items         map[string]int `json:"items"`
	Status        Status         `json:"status"`
}

// TotalItems sums the requested quantities across the item map.
func (r Report) TotalItems() int {
	total := 0
	for _, qty := range r.Items {
		total += qty
	}
	return total
}

// CloneItems returns an independent copy of the item map so callers can
// mutate it without aliasing stored state.
func (r Report) CloneItems() map[string]int {
	items := make(map[string]int, len(r.Items))
	for name, qty := range r.Items {
		items[name] = qty
	}
	return items
}
