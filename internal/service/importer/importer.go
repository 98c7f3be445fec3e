// Package importer runs the document import pipeline: extract text, ask the
// structured-extraction collaborator for records, normalize them, and swap
// the result in as a full replacement for reports and stock.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stationaryhq/stationary/internal/domain/models"
	"github.com/stationaryhq/stationary/internal/service/normalizer"
)

// ErrNoExtractableText indicates the document yielded no text at all. The
// import aborts with no state change; the file may be an image, empty, or
// corrupted.
var ErrNoExtractableText = errors.New("no text could be extracted from the document")

// TextExtractor produces concatenated page text from raw document bytes.
type TextExtractor interface {
	ExtractText(ctx context.Context, document []byte) (string, error)
}

// StructuredExtractor turns document text into schema-validated records.
// Configured reports whether a credential is available; when it is not, the
// import falls back to demo data instead of failing the user flow.
type StructuredExtractor interface {
	Configured() bool
	ExtractRecords(ctx context.Context, documentText string) (models.ExtractedPayload, error)
}

// Inventory is the replacement sink for a successful import.
type Inventory interface {
	ReplaceAll(reports []models.Report, stock map[string]models.StockItem) error
}

// Result summarizes a completed import.
type Result struct {
	ReportCount int  `json:"reportCount"`
	StockCount  int  `json:"stockCount"`
	DemoMode    bool `json:"demoMode"`
}

// Service orchestrates the import stages sequentially. Any failure at any
// stage aborts the whole import; the replacement happens only after every
// external call succeeded and the payload normalized.
type Service struct {
	extractor TextExtractor
	ai        StructuredExtractor
	inventory Inventory
	logger    *zap.Logger
	newID     func() string
}

// NewService wires the import pipeline.
func NewService(extractor TextExtractor, ai StructuredExtractor, inventory Inventory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		extractor: extractor,
		ai:        ai,
		inventory: inventory,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// ImportFromDocument runs the full pipeline against the uploaded document.
func (s *Service) ImportFromDocument(ctx context.Context, document []byte) (Result, error) {
	if s.ai == nil || !s.ai.Configured() {
		return s.loadDemoData()
	}

	text, err := s.extractor.ExtractText(ctx, document)
	if err != nil {
		return Result{}, fmt.Errorf("extract document text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrNoExtractableText
	}

	payload, err := s.ai.ExtractRecords(ctx, text)
	if err != nil {
		return Result{}, fmt.Errorf("structured extraction: %w", err)
	}

	reports, stock := normalizer.NormalizeExtraction(payload, s.newID)
	if err := s.inventory.ReplaceAll(reports, stock); err != nil {
		return Result{}, fmt.Errorf("replace inventory state: %w", err)
	}

	s.logger.Info("document import completed",
		zap.Int("reports", len(reports)),
		zap.Int("stock_items", len(stock)))

	return Result{ReportCount: len(reports), StockCount: len(stock)}, nil
}

func (s *Service) loadDemoData() (Result, error) {
	s.logger.Warn("extraction service not configured, loading demo data")

	reports := DemoReports()
	stock := DemoStock()
	if err := s.inventory.ReplaceAll(reports, stock); err != nil {
		return Result{}, fmt.Errorf("replace inventory state: %w", err)
	}
	return Result{ReportCount: len(reports), StockCount: len(stock), DemoMode: true}, nil
}
