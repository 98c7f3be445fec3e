package inventory

import (
	"sort"

	"github.com/stationaryhq/stationary/internal/domain/models"
)

// Ledger is the stock ledger: one entry per catalog item for the lifetime of
// the application. It is a dumb mutator. It never rejects a delta and never
// guards against negative quantities; the sufficiency gates in the engine own
// that responsibility.
type Ledger struct {
	items map[string]models.StockItem
}

// NewLedger builds a zeroed ledger covering the full catalog.
func NewLedger() *Ledger {
	items := make(map[string]models.StockItem, len(models.CatalogItems))
	for _, name := range models.CatalogItems {
		items[name] = models.StockItem{}
	}
	return &Ledger{items: items}
}

// NewLedgerFrom builds a ledger seeded with the given state. Entries outside
// the catalog are discarded; catalog items missing from the input start at
// zero.
func NewLedgerFrom(stock map[string]models.StockItem) *Ledger {
	l := NewLedger()
	for name, entry := range stock {
		if _, ok := l.items[name]; ok {
			l.items[name] = entry
		}
	}
	return l
}

// ApplyDelta adjusts the quantity for item by delta, stamping lastInDate on
// additions and lastOutDate on deductions. Unknown items and zero deltas are
// silently ignored.
func (l *Ledger) ApplyDelta(item string, delta int, today string) {
	entry, ok := l.items[item]
	if !ok || delta == 0 {
		return
	}

	entry.Quantity += delta
	entry.LastUpdateQuantity = delta
	if delta > 0 {
		entry.LastInDate = today
	} else {
		entry.LastOutDate = today
	}
	l.items[item] = entry
}

// SetAbsolute moves item to newQuantity, recording the difference exactly as
// ApplyDelta would. The untouched date field is preserved.
func (l *Ledger) SetAbsolute(item string, newQuantity int, today string) {
	entry, ok := l.items[item]
	if !ok {
		return
	}
	l.ApplyDelta(item, newQuantity-entry.Quantity, today)
}

// ClearAll resets every catalog item to an all-zero entry. No gate applies;
// this is an unconditional override.
func (l *Ledger) ClearAll() {
	for name := range l.items {
		l.items[name] = models.StockItem{}
	}
}

// SufficiencyCheck returns every item whose demanded quantity exceeds the
// current ledger quantity, sorted by item name. Read-only. Items outside the
// catalog have zero availability, so any positive demand for them fails.
func (l *Ledger) SufficiencyCheck(demands map[string]int) []Deficiency {
	names := make([]string, 0, len(demands))
	for name := range demands {
		names = append(names, name)
	}
	sort.Strings(names)

	var deficiencies []Deficiency
	for _, name := range names {
		demand := demands[name]
		available := l.items[name].Quantity
		if demand > available {
			deficiencies = append(deficiencies, Deficiency{Item: name, Requested: demand, Available: available})
		}
	}
	return deficiencies
}

// Quantity returns the current quantity for item, zero if unknown.
func (l *Ledger) Quantity(item string) int {
	return l.items[item].Quantity
}

// Items returns a copy of the full ledger state.
func (l *Ledger) Items() map[string]models.StockItem {
	out := make(map[string]models.StockItem, len(l.items))
	for name, entry := range l.items {
		out[name] = entry
	}
	return out
}
