package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	raw := `{"reports":[{"requesterName":"John Doe","campus":"Campus1","importDate":"2024-02-01","exportDate":"","items":[{"name":"Pen","quantity":3}],"status":"Done"}],"stock":[{"name":"Pen","quantity":10,"lastInDate":"2024-01-20"}]}`

	payload, err := parsePayload(raw)
	require.NoError(t, err)
	require.Len(t, payload.Reports, 1)
	assert.Equal(t, "John Doe", payload.Reports[0].RequesterName)
	require.Len(t, payload.Stock, 1)
	require.NotNil(t, payload.Stock[0].Quantity)
	assert.Equal(t, 10, *payload.Stock[0].Quantity)
}

func TestParsePayloadStripsCodeFences(t *testing.T) {
	fenced := "```json\n{\"reports\":[],\"stock\":[]}\n```"
	payload, err := parsePayload(fenced)
	require.NoError(t, err)
	assert.Empty(t, payload.Reports)

	bare := "```\n{\"reports\":[],\"stock\":[]}\n```"
	_, err = parsePayload(bare)
	assert.NoError(t, err)
}

func TestParsePayloadMalformed(t *testing.T) {
	_, err := parsePayload("the model refused to answer")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestUnconfiguredClient(t *testing.T) {
	client := NewClient("")
	assert.False(t, client.Configured())

	_, err := client.ExtractRecords(context.Background(), "text")
	assert.Error(t, err)
}

func TestConfiguredFlag(t *testing.T) {
	assert.True(t, NewClient("some-key").Configured())
}
