// Package export writes the three report views into one XLSX workbook.
// It is a presentation collaborator: it never reorders or filters rows,
// and cell-level styling stays out of its hands.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/rvillem/skuledger/internal/domain"
)

const (
	sheetSKUProfit       = "SKU Profit"
	sheetProductBusiness = "Product Business"
	sheetSKUInventory    = "SKU Inventory"

	minColumnWidth = 10
	maxColumnWidth = 50
)

// Writer saves report workbooks into a directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer targeting dir, created on first use.
func NewWriter(dir string) *Writer {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: filepath.Clean(dir)}
}

// Write saves the report as skuledger-<runID>.xlsx and returns the
// final path. The workbook is written to a temp name first and promoted
// by rename, so a failed run never leaves a half-written report behind.
func (w *Writer) Write(report domain.Report, runID uuid.UUID) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure output directory: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetSKUProfit); err != nil {
		return "", fmt.Errorf("name first sheet: %w", err)
	}
	if err := writeSKUProfit(f, report.SKUProfit); err != nil {
		return "", err
	}
	if _, err := f.NewSheet(sheetProductBusiness); err != nil {
		return "", fmt.Errorf("create sheet %s: %w", sheetProductBusiness, err)
	}
	if err := writeProductBusiness(f, report.ProductBusiness); err != nil {
		return "", err
	}
	if _, err := f.NewSheet(sheetSKUInventory); err != nil {
		return "", fmt.Errorf("create sheet %s: %w", sheetSKUInventory, err)
	}
	if err := writeSKUInventory(f, report.SKUInventory); err != nil {
		return "", err
	}

	// excelize refuses unknown extensions, so the temp name keeps .xlsx.
	finalPath := filepath.Join(w.dir, fmt.Sprintf("skuledger-%s.xlsx", runID))
	tempPath := filepath.Join(w.dir, fmt.Sprintf(".skuledger-%s.tmp.xlsx", runID))
	if err := f.SaveAs(tempPath); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	if err := os.Rename(tempPath, finalPath); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("promote workbook: %w", err)
	}
	return finalPath, nil
}

func writeSKUProfit(f *excelize.File, rows []domain.SKUProfitRow) error {
	headers := []string{"Product Code", "SKU", "Units Sold", "Gross Margin", "Product Profit", "Product Ad Spend", "Net Profit"}
	grid := make([][]any, 0, len(rows))
	for _, r := range rows {
		grid = append(grid, []any{r.Code, r.SKU, r.UnitsSold, r.GrossMargin, r.GroupProfit, r.GroupAdSpend, r.NetProfit})
	}
	return writeSheet(f, sheetSKUProfit, headers, grid)
}

func writeProductBusiness(f *excelize.File, rows []domain.ProductBusinessRow) error {
	headers := []string{"Product Code", "Profit", "Ad Spend", "Net Profit", "Units Sold", "Ad Units", "Organic Units", "Organic Ratio", "Ad/Profit Ratio", "Warehouse A Stock", "Warehouse B Stock", "Total Stock"}
	grid := make([][]any, 0, len(rows))
	for _, r := range rows {
		grid = append(grid, []any{r.GroupCode, r.Profit, r.AdSpend, r.NetProfit, r.Volume, r.AdUnits, r.OrganicUnits, r.OrganicRatio, r.AdProfitRatio, r.StockA, r.StockB, r.TotalStock})
	}
	return writeSheet(f, sheetProductBusiness, headers, grid)
}

func writeSKUInventory(f *excelize.File, rows []domain.SKUInventoryRow) error {
	headers := []string{"Product Code", "SKU", "Barcode", "Warehouse A Stock", "Warehouse B Stock", "Total Stock", "Inventory Value", "Dead Stock Value", "Safety Stock", "Redundancy Threshold", "Restock Quantity"}
	grid := make([][]any, 0, len(rows))
	for _, r := range rows {
		grid = append(grid, []any{r.Code, r.SKU, r.Barcode, r.StockA, r.StockB, r.TotalStock, r.InventoryValue, r.DeadStockValue, r.SafetyStock, r.RedundancyQty, r.RestockQty})
	}
	return writeSheet(f, sheetSKUInventory, headers, grid)
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	header := make([]any, len(headers))
	widths := make([]int, len(headers))
	for i, h := range headers {
		header[i] = h
		widths[i] = len(h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("address %s row %d: %w", sheet, i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
		for col, value := range row {
			if n := len(fmt.Sprintf("%v", value)); col < len(widths) && n > widths[col] {
				widths[col] = n
			}
		}
	}

	for i, width := range widths {
		width += 2
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name %d: %w", i+1, err)
		}
		if err := f.SetColWidth(sheet, name, name, float64(width)); err != nil {
			return fmt.Errorf("set %s column width: %w", sheet, err)
		}
	}

	// Keep the header row visible while scrolling.
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze %s header: %w", sheet, err)
	}
	return nil
}
