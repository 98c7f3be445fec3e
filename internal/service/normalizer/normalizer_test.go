package normalizer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stationaryhq/stationary/internal/domain/models"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func intPtr(v int) *int { return &v }

func TestNormalizeExtractionReports(t *testing.T) {
	payload := models.ExtractedPayload{
		Reports: []models.ExtractedReport{
			{
				RequesterName: "John Doe",
				Campus:        "Campus1",
				ImportDate:    "2024-02-01",
				ExportDate:    "2024-02-03",
				Status:        "Done",
				Items: []models.ExtractedItem{
					{Name: "Pen", Quantity: 2},
					{Name: "Pen", Quantity: 1},
					{Name: "Bk", Quantity: 0},
					{Name: "", Quantity: 5},
				},
			},
			{
				// No requester, dropped entirely.
				Campus:     "Campus2",
				ImportDate: "2024-02-01",
			},
			{
				RequesterName: "Jane Smith",
				Campus:        "Campus2",
				ImportDate:    "2024-02-05",
				Status:        "done",
			},
		},
	}

	reports, _ := NormalizeExtraction(payload, sequentialIDs())
	require.Len(t, reports, 2)

	assert.Equal(t, "id-1", reports[0].ID)
	assert.Equal(t, models.StatusDone, reports[0].Status)
	assert.Equal(t, map[string]int{"Pen": 3}, reports[0].Items, "quantities accumulate, empty names and non-positive lines drop")

	assert.Equal(t, models.StatusProcess, reports[1].Status, "status must be exactly Done to count as Done")
	assert.Empty(t, reports[1].Items)
}

func TestNormalizeExtractionStock(t *testing.T) {
	payload := models.ExtractedPayload{
		Stock: []models.ExtractedStockItem{
			{Name: "A4 Paper", Quantity: intPtr(18), LastInDate: "2024-01-15"},
			{Name: "Mouse", Quantity: intPtr(9), LastInDate: "N/A"},
			{Name: "Pen"},
			{Quantity: intPtr(4)},
		},
	}

	_, stock := NormalizeExtraction(payload, sequentialIDs())
	require.Len(t, stock, 2)

	assert.Equal(t, models.StockItem{Quantity: 18, LastInDate: "2024-01-15"}, stock["A4 Paper"])
	assert.Equal(t, models.StockItem{Quantity: 9}, stock["Mouse"], "N/A maps to an empty lastInDate")
}

func TestNormalizeExtractionEmptyPayload(t *testing.T) {
	reports, stock := NormalizeExtraction(models.ExtractedPayload{}, sequentialIDs())
	assert.Empty(t, reports)
	assert.Empty(t, stock)
}
