// Package extract implements the text-extraction collaborator for uploaded
// PDF documents.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// PDFExtractor pulls concatenated page text out of raw PDF bytes.
type PDFExtractor struct {
	logger *zap.Logger
}

// NewPDFExtractor builds the extractor.
func NewPDFExtractor(logger *zap.Logger) *PDFExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFExtractor{logger: logger}
}

// ExtractText returns the text of every page joined by blank lines. Pages
// that fail to decode are skipped; a document where nothing decodes comes
// back as an empty string for the caller to classify.
func (e *PDFExtractor) ExtractText(ctx context.Context, document []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(document), int64(len(document)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Debug("skipping unreadable pdf page", zap.Int("page", i), zap.Error(err))
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n\n")
	}

	return builder.String(), nil
}
