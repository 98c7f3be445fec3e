package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stationaryhq/stationary/internal/domain/models"
)

const today = "2024-03-05"

func TestApplyDelta(t *testing.T) {
	l := NewLedger()

	l.ApplyDelta("A4 Paper", 10, today)
	entry := l.Items()["A4 Paper"]
	assert.Equal(t, 10, entry.Quantity)
	assert.Equal(t, today, entry.LastInDate)
	assert.Equal(t, "", entry.LastOutDate)
	assert.Equal(t, 10, entry.LastUpdateQuantity)

	l.ApplyDelta("A4 Paper", -4, "2024-03-06")
	entry = l.Items()["A4 Paper"]
	assert.Equal(t, 6, entry.Quantity)
	assert.Equal(t, today, entry.LastInDate, "deduction must not touch lastInDate")
	assert.Equal(t, "2024-03-06", entry.LastOutDate)
	assert.Equal(t, -4, entry.LastUpdateQuantity)
}

func TestApplyDeltaZeroIsNoop(t *testing.T) {
	l := NewLedger()
	l.ApplyDelta("Pen", 5, today)
	before := l.Items()["Pen"]

	l.ApplyDelta("Pen", 0, "2024-03-09")
	assert.Equal(t, before, l.Items()["Pen"])
}

func TestApplyDeltaUnknownItemIgnored(t *testing.T) {
	l := NewLedger()
	l.ApplyDelta("Typewriter", 5, today)

	_, ok := l.Items()["Typewriter"]
	assert.False(t, ok)
}

func TestSetAbsolute(t *testing.T) {
	l := NewLedger()
	l.ApplyDelta("Mouse", 8, "2024-01-01")

	l.SetAbsolute("Mouse", 3, today)
	entry := l.Items()["Mouse"]
	assert.Equal(t, 3, entry.Quantity)
	assert.Equal(t, "2024-01-01", entry.LastInDate, "decrease must preserve lastInDate")
	assert.Equal(t, today, entry.LastOutDate)
	assert.Equal(t, -5, entry.LastUpdateQuantity)

	l.SetAbsolute("Mouse", 9, "2024-03-07")
	entry = l.Items()["Mouse"]
	assert.Equal(t, 9, entry.Quantity)
	assert.Equal(t, "2024-03-07", entry.LastInDate)
	assert.Equal(t, today, entry.LastOutDate, "increase must preserve lastOutDate")
	assert.Equal(t, 6, entry.LastUpdateQuantity)
}

func TestSetAbsoluteSameQuantityIsNoop(t *testing.T) {
	l := NewLedger()
	l.ApplyDelta("Mouse", 8, "2024-01-01")
	before := l.Items()["Mouse"]

	l.SetAbsolute("Mouse", 8, today)
	assert.Equal(t, before, l.Items()["Mouse"])
}

func TestClearAllIsIdempotent(t *testing.T) {
	l := NewLedger()
	l.ApplyDelta("Pen", 12, today)
	l.ApplyDelta("Bk", -3, today)

	l.ClearAll()
	first := l.Items()
	l.ClearAll()
	assert.Equal(t, first, l.Items())

	for _, item := range models.CatalogItems {
		assert.Equal(t, models.StockItem{}, first[item])
	}
}

func TestSufficiencyCheck(t *testing.T) {
	l := NewLedger()
	l.ApplyDelta("A4 Paper", 5, today)
	l.ApplyDelta("Pen", 2, today)

	deficiencies := l.SufficiencyCheck(map[string]int{
		"A4 Paper": 6,
		"Pen":      2,
		"Webcam":   1,
	})

	require.Len(t, deficiencies, 2)
	assert.Equal(t, Deficiency{Item: "A4 Paper", Requested: 6, Available: 5}, deficiencies[0])
	assert.Equal(t, Deficiency{Item: "Webcam", Requested: 1, Available: 0}, deficiencies[1])
}

func TestSufficiencyCheckIsReadOnly(t *testing.T) {
	l := NewLedger()
	l.ApplyDelta("A4 Paper", 5, today)
	before := l.Items()

	l.SufficiencyCheck(map[string]int{"A4 Paper": 100})
	assert.Equal(t, before, l.Items())
}

func TestSufficiencyCheckSatisfied(t *testing.T) {
	l := NewLedger()
	l.ApplyDelta("A4 Paper", 5, today)

	assert.Empty(t, l.SufficiencyCheck(map[string]int{"A4 Paper": 5}))
}
