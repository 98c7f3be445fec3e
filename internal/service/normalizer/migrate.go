package normalizer

import (
	"encoding/json"

	"github.com/stationaryhq/stationary/internal/domain/models"
)

// Persisted stock documents have passed through three schemas over time:
// a bare number, an object carrying dateAdded, and the current StockItem
// shape. Each entry is classified by an explicit field-presence check and
// converted by its own function.
type stockVariant int

const (
	variantInvalid stockVariant = iota
	variantBareNumber
	variantDateAdded
	variantCurrent
)

type storedStockProbe struct {
	Quantity           *int    `json:"quantity"`
	DateAdded          *string `json:"dateAdded"`
	LastInDate         *string `json:"lastInDate"`
	LastOutDate        *string `json:"lastOutDate"`
	LastUpdateQuantity *int    `json:"lastUpdateQuantity"`
}

// MigrateStoredStock converts any previously persisted stock document into
// the current shape, producing exactly one entry per catalog item. Unknown
// or undecodable entries initialize fresh; raw may be nil.
func MigrateStoredStock(raw json.RawMessage, today string) map[string]models.StockItem {
	var saved map[string]json.RawMessage
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &saved); err != nil {
			saved = nil
		}
	}

	migrated := make(map[string]models.StockItem, len(models.CatalogItems))
	for _, item := range models.CatalogItems {
		entry, ok := saved[item]
		if !ok {
			migrated[item] = models.StockItem{}
			continue
		}
		migrated[item] = migrateStockEntry(entry, today)
	}
	return migrated
}

func migrateStockEntry(raw json.RawMessage, today string) models.StockItem {
	if qty, ok := asBareNumber(raw); ok {
		return migrateBareNumber(qty, today)
	}

	var probe storedStockProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return models.StockItem{}
	}

	switch classifyStockProbe(probe) {
	case variantDateAdded:
		return migrateDateAdded(probe, today)
	case variantCurrent:
		return migrateCurrent(probe)
	default:
		return models.StockItem{}
	}
}

func asBareNumber(raw json.RawMessage) (int, bool) {
	var qty int
	if err := json.Unmarshal(raw, &qty); err != nil {
		return 0, false
	}
	return qty, true
}

func classifyStockProbe(probe storedStockProbe) stockVariant {
	switch {
	case probe.DateAdded != nil:
		return variantDateAdded
	case probe.Quantity != nil && probe.LastInDate != nil:
		return variantCurrent
	default:
		return variantInvalid
	}
}

func migrateBareNumber(qty int, today string) models.StockItem {
	return models.StockItem{Quantity: qty, LastInDate: today}
}

func migrateDateAdded(probe storedStockProbe, today string) models.StockItem {
	entry := models.StockItem{LastInDate: today}
	if probe.Quantity != nil {
		entry.Quantity = *probe.Quantity
	}
	if probe.DateAdded != nil && *probe.DateAdded != "" {
		entry.LastInDate = *probe.DateAdded
	}
	return entry
}

func migrateCurrent(probe storedStockProbe) models.StockItem {
	entry := models.StockItem{Quantity: *probe.Quantity, LastInDate: *probe.LastInDate}
	if probe.LastOutDate != nil {
		entry.LastOutDate = *probe.LastOutDate
	}
	if probe.LastUpdateQuantity != nil {
		entry.LastUpdateQuantity = *probe.LastUpdateQuantity
	}
	return entry
}

type storedReport struct {
	ID            string          `json:"id"`
	RequesterName string          `json:"requesterName"`
	Campus        string          `json:"campus"`
	ImportDate    string          `json:"importDate"`
	ExportDate    string          `json:"exportDate"`
	Items         json.RawMessage `json:"items"`
	Status        string          `json:"status"`
}

// MigrateStoredReports converts a previously persisted report array into the
// current shape. Reports saved before the quantity schema stored items as a
// plain name list; repeated names collapse into counted map entries. An
// undecodable document yields an empty collection.
func MigrateStoredReports(raw json.RawMessage) []models.Report {
	if len(raw) == 0 {
		return nil
	}

	var saved []storedReport
	if err := json.Unmarshal(raw, &saved); err != nil {
		return nil
	}

	reports := make([]models.Report, 0, len(saved))
	for _, rec := range saved {
		status := models.StatusProcess
		if rec.Status == string(models.StatusDone) {
			status = models.StatusDone
		}

		reports = append(reports, models.Report{
			ID:            rec.ID,
			RequesterName: rec.RequesterName,
			Campus:        rec.Campus,
			ImportDate:    rec.ImportDate,
			ExportDate:    rec.ExportDate,
			Items:         migrateReportItems(rec.Items),
			Status:        status,
		})
	}
	return reports
}

func migrateReportItems(raw json.RawMessage) map[string]int {
	if len(raw) > 0 {
		var names []string
		if err := json.Unmarshal(raw, &names); err == nil {
			items := make(map[string]int, len(names))
			for _, name := range names {
				items[name]++
			}
			return items
		}

		var items map[string]int
		if err := json.Unmarshal(raw, &items); err == nil {
			for name, qty := range items {
				if qty <= 0 {
					delete(items, name)
				}
			}
			return items
		}
	}
	return map[string]int{}
}
