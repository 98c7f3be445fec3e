package normalizer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stationaryhq/stationary/internal/domain/models"
)

const today = "2024-03-05"

func TestMigrateStoredStockVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		item string
		want models.StockItem
	}{
		{
			name: "bare number",
			raw:  `{"A4 Paper": 7}`,
			item: "A4 Paper",
			want: models.StockItem{Quantity: 7, LastInDate: today},
		},
		{
			name: "dateAdded shape",
			raw:  `{"Mouse": {"quantity": 4, "dateAdded": "2023-05-01"}}`,
			item: "Mouse",
			want: models.StockItem{Quantity: 4, LastInDate: "2023-05-01"},
		},
		{
			name: "dateAdded shape with empty date falls back to today",
			raw:  `{"Mouse": {"quantity": 4, "dateAdded": ""}}`,
			item: "Mouse",
			want: models.StockItem{Quantity: 4, LastInDate: today},
		},
		{
			name: "current shape preserved",
			raw:  `{"Pen": {"quantity": 9, "lastInDate": "2024-01-01", "lastOutDate": "2024-02-02", "lastUpdateQuantity": -3}}`,
			item: "Pen",
			want: models.StockItem{Quantity: 9, LastInDate: "2024-01-01", LastOutDate: "2024-02-02", LastUpdateQuantity: -3},
		},
		{
			name: "current shape with missing optional fields",
			raw:  `{"Pen": {"quantity": 9, "lastInDate": "2024-01-01"}}`,
			item: "Pen",
			want: models.StockItem{Quantity: 9, LastInDate: "2024-01-01"},
		},
		{
			name: "unrecognized shape initializes fresh",
			raw:  `{"Bk": {"weird": true}}`,
			item: "Bk",
			want: models.StockItem{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			migrated := MigrateStoredStock(json.RawMessage(tt.raw), today)
			assert.Equal(t, tt.want, migrated[tt.item])
		})
	}
}

func TestMigrateStoredStockCoversCatalog(t *testing.T) {
	migrated := MigrateStoredStock(nil, today)
	require.Len(t, migrated, len(models.CatalogItems))
	for _, item := range models.CatalogItems {
		assert.Equal(t, models.StockItem{}, migrated[item])
	}
}

func TestMigrateStoredStockDropsUnknownItems(t *testing.T) {
	migrated := MigrateStoredStock(json.RawMessage(`{"Typewriter": 3}`), today)
	_, ok := migrated["Typewriter"]
	assert.False(t, ok)
}

func TestMigrateStoredStockMalformedDocument(t *testing.T) {
	migrated := MigrateStoredStock(json.RawMessage(`not json`), today)
	require.Len(t, migrated, len(models.CatalogItems))
}

func TestMigrateStoredReportsLegacyItemList(t *testing.T) {
	raw := json.RawMessage(`[{
		"id": "r1",
		"requesterName": "John",
		"campus": "Campus1",
		"importDate": "2024-01-01",
		"exportDate": "2024-01-02",
		"items": ["Pen", "Pen", "Bk"],
		"status": "Done"
	}]`)

	reports := MigrateStoredReports(raw)
	require.Len(t, reports, 1)
	assert.Equal(t, map[string]int{"Pen": 2, "Bk": 1}, reports[0].Items)
	assert.Equal(t, models.StatusDone, reports[0].Status)
}

func TestMigrateStoredReportsNormalizesStatusAndItems(t *testing.T) {
	raw := json.RawMessage(`[{
		"id": "r1",
		"requesterName": "John",
		"campus": "Campus1",
		"importDate": "2024-01-01",
		"exportDate": "2024-01-02",
		"items": {"Pen": 3, "Bk": 0},
		"status": "Pending"
	}]`)

	reports := MigrateStoredReports(raw)
	require.Len(t, reports, 1)
	assert.Equal(t, models.StatusProcess, reports[0].Status, "any status other than Done collapses to Process")
	assert.Equal(t, map[string]int{"Pen": 3}, reports[0].Items, "zero-quantity entries are removed, not stored")
}

func TestMigrateStoredReportsMalformed(t *testing.T) {
	assert.Nil(t, MigrateStoredReports(json.RawMessage(`{"not": "an array"}`)))
	assert.Nil(t, MigrateStoredReports(nil))
}

func TestMigrateStoredReportsUnreadableItems(t *testing.T) {
	raw := json.RawMessage(`[{"id": "r1", "requesterName": "John", "campus": "Campus1",
		"importDate": "2024-01-01", "exportDate": "2024-01-02", "items": 42, "status": "Done"}]`)

	reports := MigrateStoredReports(raw)
	require.Len(t, reports, 1)
	assert.Empty(t, reports[0].Items)
}
