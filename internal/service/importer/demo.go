package importer

import "github.com/stationaryhq/stationary/internal/domain/models"

// DemoReports returns the fixed sample reports loaded when the extraction
// service has no credential configured.
func DemoReports() []models.Report {
	return []models.Report{
		{
			ID:            "demo-1",
			RequesterName: "John Doe (Demo)",
			Campus:        "Campus1",
			ImportDate:    "2024-01-15",
			ExportDate:    "2024-01-16",
			Items:         map[string]int{"A4 Paper": 2, "Mouse": 1},
			Status:        models.StatusDone,
		},
		{
			ID:            "demo-2",
			RequesterName: "Jane Smith (Demo)",
			Campus:        "Campus2",
			ImportDate:    "2024-01-17",
			ExportDate:    "2024-01-18",
			Items:         map[string]int{"Keyboard": 1, "Webcam": 1, "Bk": 5},
			Status:        models.StatusProcess,
		},
	}
}

// DemoStock returns the matching sample ledger: every catalog item present,
// a handful carrying non-zero state consistent with the demo reports.
func DemoStock() map[string]models.StockItem {
	stock := make(map[string]models.StockItem, len(models.CatalogItems))
	for _, item := range models.CatalogItems {
		stock[item] = models.StockItem{}
	}

	stock["A4 Paper"] = models.StockItem{Quantity: 18, LastInDate: "2024-01-10", LastOutDate: "2024-01-15", LastUpdateQuantity: -2}
	stock["Mouse"] = models.StockItem{Quantity: 9, LastInDate: "2024-01-10", LastOutDate: "2024-01-15", LastUpdateQuantity: -1}
	stock["Keyboard"] = models.StockItem{Quantity: 14, LastInDate: "2024-01-10"}
	stock["Webcam"] = models.StockItem{Quantity: 5, LastInDate: "2024-01-10"}
	stock["Bk"] = models.StockItem{Quantity: 20, LastInDate: "2024-01-10"}
	return stock
}
