// Package normalizer maps loosely-typed external records into the domain
// shapes: structured-extraction payloads from the import flow, and legacy
// documents left behind by earlier persisted schemas.
package normalizer

import (
	"github.com/stationaryhq/stationary/internal/domain/models"
)

// NormalizeExtraction converts a schema-validated extraction payload into a
// full replacement report list and stock map. Reports missing a requester,
// campus, or import date are dropped entirely. Status defaults to Process
// unless it is exactly Done. Every record receives a fresh id from newID.
func NormalizeExtraction(payload models.ExtractedPayload, newID func() string) ([]models.Report, map[string]models.StockItem) {
	reports := make([]models.Report, 0, len(payload.Reports))
	for _, rec := range payload.Reports {
		if rec.RequesterName == "" || rec.Campus == "" || rec.ImportDate == "" {
			continue
		}

		items := make(map[string]int)
		for _, line := range rec.Items {
			if line.Name == "" || line.Quantity <= 0 {
				continue
			}
			items[line.Name] += line.Quantity
		}

		status := models.StatusProcess
		if rec.Status == string(models.StatusDone) {
			status = models.StatusDone
		}

		reports = append(reports, models.Report{
			ID:            newID(),
			RequesterName: rec.RequesterName,
			Campus:        rec.Campus,
			ImportDate:    rec.ImportDate,
			ExportDate:    rec.ExportDate,
			Items:         items,
			Status:        status,
		})
	}

	stock := make(map[string]models.StockItem)
	for _, rec := range payload.Stock {
		if rec.Name == "" || rec.Quantity == nil {
			continue
		}

		lastIn := rec.LastInDate
		if lastIn == "N/A" {
			lastIn = ""
		}

		// Import cannot know transaction history, so the out-date and last
		// delta always reset.
		stock[rec.Name] = models.StockItem{
			Quantity:           *rec.Quantity,
			LastInDate:         lastIn,
			LastOutDate:        "",
			LastUpdateQuantity: 0,
		}
	}

	return reports, stock
}
