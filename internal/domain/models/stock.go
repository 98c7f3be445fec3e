package models

// DateLayout is the ISO date format used for every date field in the system.
const DateLayout = "2006-01-02"

// StockItem captures the ledger state for one catalog item.
type StockItem struct {
	Quantity           int    `json:"quantity"`
	LastInDate         string `json:"lastInDate"`
	LastOutDate        string `json:"lastOutDate"`
	LastUpdateQuantity int    `json:"lastUpdateQuantity"`
}

// CatalogItems is the fixed set of stationary items the ledger tracks. Report
// activity never adds or removes entries; only the numeric fields change.
var CatalogItems = []string{
	"A4 Paper",
	"Bk",
	"Pen",
	"Pencil",
	"Marker",
	"Stapler",
	"Folder",
	"Mouse",
	"Keyboard",
	"Webcam",
	"Headset",
	"USB Drive",
}

// CampusOptions enumerates the campuses a report can be filed against.
var CampusOptions = []string{"Campus1", "Campus2", "Campus3"}

// InCatalog reports whether the named item belongs to the fixed catalog.
func InCatalog(name string) bool {
	for _, item := range CatalogItems {
		if item == name {
			return true
		}
	}
	return false
}

// ValidCampus reports whether the campus is one of the enumerated options.
func ValidCampus(name string) bool {
	for _, campus := range CampusOptions {
		if campus == name {
			return true
		}
	}
	return false
}
