package models

// ExtractedPayload is the schema-validated output of the structured
// extraction collaborator: a full replacement for reports and stock.
type ExtractedPayload struct {
	Reports []ExtractedReport    `json:"reports"`
	Stock   []ExtractedStockItem `json:"stock"`
}

// ExtractedReport is a loosely-typed report record as produced by document
// extraction. Items arrive as a list rather than a map, and status is free
// text until normalized.
type ExtractedReport struct {
	RequesterName string          `json:"requesterName"`
	Campus        string          `json:"campus"`
	ImportDate    string          `json:"importDate"`
	ExportDate    string          `json:"exportDate"`
	Items         []ExtractedItem `json:"items"`
	Status        string          `json:"status"`
}

// ExtractedItem is one item line inside an extracted report.
type ExtractedItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ExtractedStockItem is a stock row as produced by document extraction.
// Quantity is a pointer so records missing a numeric quantity can be dropped
// rather than defaulting to zero.
type ExtractedStockItem struct {
	Name       string `json:"name"`
	Quantity   *int   `json:"quantity"`
	LastInDate string `json:"lastInDate"`
}
