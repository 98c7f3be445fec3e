// Package render implements the document-rendering collaborator: reports and
// stock laid out as printable PDF tables.
package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/stationaryhq/stationary/internal/domain/models"
)

// ErrNoData indicates there is nothing to export.
var ErrNoData = errors.New("no report or stock data to export")

// Renderer renders tabular report and stock data to printable files.
type Renderer interface {
	RenderFullReport(reports []models.Report, stock map[string]models.StockItem) (string, error)
	RenderStock(stock map[string]models.StockItem) (string, error)
}

// PDFRenderer writes PDF files named with today's date into an output
// directory.
type PDFRenderer struct {
	outDir string
	logger *zap.Logger
	now    func() time.Time
}

// NewPDFRenderer builds a renderer targeting the given directory.
func NewPDFRenderer(outDir string, logger *zap.Logger) *PDFRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFRenderer{outDir: outDir, logger: logger, now: time.Now}
}

// RenderFullReport writes the all-time report document: an overall item
// summary, one section per status with its own summary and table, then the
// current stock inventory.
func (r *PDFRenderer) RenderFullReport(reports []models.Report, stock map[string]models.StockItem) (string, error) {
	if len(reports) == 0 && len(stock) == 0 {
		return "", ErrNoData
	}

	var done, process []models.Report
	for _, report := range reports {
		if report.Status == models.StatusDone {
			done = append(done, report)
		} else {
			process = append(process, report)
		}
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, "Stationary Report (All Time, All Campuses)", "", 1, "L", false, 0, "")
	doc.Ln(2)

	if total := itemCounts(reports); len(total) > 0 {
		writeSummary(doc, "Overall Summary", total)
	}
	writeReportSection(doc, "Status: Done", done)
	writeReportSection(doc, "Status: Process", process)
	writeStockTable(doc, "Current Stock Inventory", stock, false)

	name := fmt.Sprintf("Stationary_Full_Report_%s.pdf", r.now().Format(models.DateLayout))
	return r.save(doc, name)
}

// RenderStock writes the standalone stock inventory document.
func (r *PDFRenderer) RenderStock(stock map[string]models.StockItem) (string, error) {
	if len(stock) == 0 {
		return "", ErrNoData
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, "Stock Inventory Report", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 8, fmt.Sprintf("Generated on: %s", r.now().Format("January 2, 2006 at 15:04")), "", 1, "L", false, 0, "")
	doc.Ln(4)

	writeStockTable(doc, "", stock, true)

	name := fmt.Sprintf("Stock_Inventory_Report_%s.pdf", r.now().Format(models.DateLayout))
	return r.save(doc, name)
}

func (r *PDFRenderer) save(doc *fpdf.Fpdf, name string) (string, error) {
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir %s: %w", r.outDir, err)
	}

	path := filepath.Join(r.outDir, name)
	if err := doc.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf %s: %w", path, err)
	}

	r.logger.Info("exported pdf", zap.String("path", path))
	return path, nil
}

func writeSummary(doc *fpdf.Fpdf, title string, counts map[string]int) {
	doc.SetFont("Helvetica", "B", 14)
	doc.SetTextColor(45, 55, 72)
	doc.CellFormat(0, 8, title, "", 1, "L", false, 0, "")

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	line := ""
	for i, name := range names {
		if i > 0 {
			line += " | "
		}
		line += fmt.Sprintf("%s: %d", name, counts[name])
	}

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(0, 0, 0)
	doc.MultiCell(0, 5, line, "", "L", false)
	doc.Ln(3)
}

func writeReportSection(doc *fpdf.Fpdf, title string, reports []models.Report) {
	if len(reports) == 0 {
		return
	}

	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(45, 55, 72)
	doc.CellFormat(0, 9, title, "", 1, "L", false, 0, "")

	if counts := itemCounts(reports); len(counts) > 0 {
		writeSummary(doc, "Summary (Total Items)", counts)
	}

	headers := []string{"Requester", "Campus", "Import", "Export", "Total"}
	widths := []float64{60, 35, 30, 30, 20}

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(45, 55, 72)
	doc.SetTextColor(255, 255, 255)
	for i, header := range headers {
		doc.CellFormat(widths[i], 7, header, "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(0, 0, 0)
	for _, report := range reports {
		cells := []string{
			report.RequesterName,
			report.Campus,
			report.ImportDate,
			report.ExportDate,
			fmt.Sprintf("%d", report.TotalItems()),
		}
		for i, cell := range cells {
			doc.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}
}

func writeStockTable(doc *fpdf.Fpdf, title string, stock map[string]models.StockItem, withOutDate bool) {
	if title != "" {
		doc.Ln(6)
		doc.SetFont("Helvetica", "B", 16)
		doc.SetTextColor(45, 55, 72)
		doc.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	}

	headers := []string{"Item", "Quantity in Stock", "Last Date In"}
	widths := []float64{70, 40, 35}
	if withOutDate {
		headers = append(headers, "Last Date Out")
		widths = append(widths, 35)
	}

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(80, 80, 80)
	doc.SetTextColor(255, 255, 255)
	for i, header := range headers {
		doc.CellFormat(widths[i], 7, header, "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	names := make([]string, 0, len(stock))
	for name := range stock {
		names = append(names, name)
	}
	sort.Strings(names)

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(0, 0, 0)
	for _, name := range names {
		entry := stock[name]
		cells := []string{name, fmt.Sprintf("%d", entry.Quantity), orNA(entry.LastInDate)}
		if withOutDate {
			cells = append(cells, orNA(entry.LastOutDate))
		}
		for i, cell := range cells {
			doc.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}
}

func itemCounts(reports []models.Report) map[string]int {
	counts := make(map[string]int)
	for _, report := range reports {
		for item, qty := range report.Items {
			counts[item] += qty
		}
	}
	return counts
}

func orNA(date string) string {
	if date == "" {
		return "N/A"
	}
	return date
}
