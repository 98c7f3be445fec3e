// Package gemini implements the structured-extraction collaborator on top of
// the Google Generative Language API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/stationaryhq/stationary/internal/domain/models"
)

const (
	apiURLTemplate = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	model          = "gemini-2.5-flash"
)

// ErrMalformedResponse indicates the model returned something that does not
// decode into the extraction schema.
var ErrMalformedResponse = errors.New("malformed extraction response")

// Client defines the structured-extraction operations backed by the model.
type Client interface {
	Configured() bool
	ExtractRecords(ctx context.Context, documentText string) (models.ExtractedPayload, error)
}

type geminiClient struct {
	httpClient *resty.Client
	apiKey     string
}

// NewClient creates a configured Gemini client. An empty key yields a client
// that reports itself unconfigured; callers decide the fallback.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetHeader("content-type", "application/json").
		SetTimeout(60 * time.Second)

	return &geminiClient{httpClient: client, apiKey: apiKey}
}

// Configured reports whether an API key is available.
func (c *geminiClient) Configured() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// responseSchema constrains the model output to the {reports, stock} payload.
var responseSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "reports": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "requesterName": {"type": "STRING"},
          "campus": {"type": "STRING"},
          "importDate": {"type": "STRING"},
          "exportDate": {"type": "STRING"},
          "items": {
            "type": "ARRAY",
            "items": {
              "type": "OBJECT",
              "properties": {
                "name": {"type": "STRING"},
                "quantity": {"type": "INTEGER"}
              },
              "required": ["name", "quantity"]
            }
          },
          "status": {"type": "STRING"}
        },
        "required": ["requesterName", "campus", "importDate", "exportDate", "items", "status"]
      }
    },
    "stock": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "name": {"type": "STRING"},
          "quantity": {"type": "INTEGER"},
          "lastInDate": {"type": "STRING"}
        },
        "required": ["name", "quantity"]
      }
    }
  },
  "required": ["reports", "stock"]
}`)

// ExtractRecords asks the model to pull every report and the full stock
// inventory out of the document text.
func (c *geminiClient) ExtractRecords(ctx context.Context, documentText string) (models.ExtractedPayload, error) {
	if !c.Configured() {
		return models.ExtractedPayload{}, fmt.Errorf("gemini api key not configured")
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(documentText)}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema,
		},
	}

	var respBody generateResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(fmt.Sprintf(apiURLTemplate, model))

	if err != nil {
		return models.ExtractedPayload{}, fmt.Errorf("gemini api call: %w", err)
	}
	if resp.IsError() {
		return models.ExtractedPayload{}, fmt.Errorf("gemini api error: %s", resp.String())
	}
	if len(respBody.Candidates) == 0 || len(respBody.Candidates[0].Content.Parts) == 0 {
		return models.ExtractedPayload{}, fmt.Errorf("%w: empty response from model", ErrMalformedResponse)
	}

	return parsePayload(respBody.Candidates[0].Content.Parts[0].Text)
}

// parsePayload decodes the model text, stripping markdown code fences the
// model occasionally wraps around the JSON.
func parsePayload(text string) (models.ExtractedPayload, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	text = strings.TrimSpace(text)

	var payload models.ExtractedPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return models.ExtractedPayload{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return payload, nil
}

func buildPrompt(documentText string) string {
	allItems := strings.Join(models.CatalogItems, ", ")
	allCampuses := strings.Join(models.CampusOptions, ", ")

	return fmt.Sprintf(`Analyze the following text from a stationary management document and extract all reports and the complete stock inventory according to the specified JSON schema.

**Extraction Rules:**
1.  **Reports:**
    *   Identify every distinct report entry.
    *   **requesterName**: Extract the full name of the person requesting items.
    *   **campus**: Extract the campus location. You must normalize it to one of these valid options: %s.
    *   **importDate** & **exportDate**: Extract the relevant dates and format them strictly as YYYY-MM-DD.
    *   **status**: Determine if the report is 'Process' or 'Done'.
    *   **items**: For each report, list all requested items and their quantities. You must normalize item names to match one of these valid options: %s.

2.  **Stock Inventory:**
    *   Identify the stock inventory list.
    *   **name**: Extract the name for each stock item, normalizing it to a valid option from the item list above.
    *   **quantity**: Extract the current quantity in stock.
    *   **lastInDate**: Extract the last stock-in date, formatted as YYYY-MM-DD. If a date is not present, use 'N/A'.

Please ensure the output strictly adheres to the JSON schema provided.

**Document Text to Analyze:**
---
%s
---
`, allCampuses, allItems, documentText)
}
