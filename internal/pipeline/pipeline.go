// Package pipeline reconciles the master catalog against the detail
// sources: per-source aggregation by normalized key, order-preserving
// left joins onto the catalog, product-group rollups, and the derived
// metrics. A run is a synchronous batch transform; it either returns
// the three report views or fails outright.
package pipeline

import (
	"errors"

	"github.com/rvillem/skuledger/internal/domain"
	"github.com/rvillem/skuledger/internal/match"
	"github.com/rvillem/skuledger/internal/metrics"
	"github.com/rvillem/skuledger/internal/report"
	"github.com/rvillem/skuledger/internal/table"
)

// Column roles each source must (or may) bind. Resolution against the
// actual files happens in the table package before Run is called.
var (
	MasterRoles     = table.Roles{Required: []string{"code", "sku", "barcode", "unit_cost", "unit_margin"}}
	SalesRoles      = table.Roles{Required: []string{"sku", "units"}}
	AdsRoles        = table.Roles{Required: []string{"ad_group", "spend"}, Optional: []string{"campaign", "units"}}
	InventoryARoles = table.Roles{Required: []string{"sku", "quantity"}}
	InventoryBRoles = table.Roles{Required: []string{"barcode", "quantity"}}
)

// Source is one logical input: its concatenated table plus resolved
// column indices.
type Source struct {
	Table   table.Table
	Columns table.ColumnIndex
}

// Inputs are the five logical sources of one run. The inventory sources
// may be empty (zero files configured); every catalog row then carries
// zero stock.
type Inputs struct {
	Master     Source
	Sales      Source
	Ads        Source
	InventoryA Source
	InventoryB Source
}

// Summary reports the shape of a completed run.
type Summary struct {
	CatalogRows    int
	ProductGroups  int
	SalesKeys      int
	AdGroups       int
	InventoryAKeys int
	InventoryBKeys int
}

// Run executes the full transform and projects the three report views.
func Run(in Inputs) (domain.Report, Summary, error) {
	if in.Master.Table.Empty() {
		return domain.Report{}, Summary{}, errors.New("master catalog has no rows")
	}

	rows := loadCatalog(in.Master)

	salesTotals := SalesTotals(in.Sales.Table, in.Sales.Columns)
	adTotals := AdSpendTotals(in.Ads.Table, in.Ads.Columns)
	stockATotals := InventoryTotals(in.InventoryA.Table, in.InventoryA.Columns, "sku", match.Key)
	stockBTotals := InventoryTotals(in.InventoryB.Table, in.InventoryB.Columns, "barcode", match.BarcodeKey)

	// Left joins: one lookup per catalog row per source, misses filled
	// with zero. Row count and order never change.
	for i := range rows {
		rows[i].UnitsSold = salesTotals[rows[i].SKUKey]
		rows[i].StockA = stockATotals[rows[i].SKUKey]
		rows[i].StockB = stockBTotals[rows[i].BarcodeKey]
		rows[i].GrossMargin = rows[i].UnitsSold * rows[i].UnitMargin
	}

	// Product-group rollups, broadcast onto every member row.
	broadcastGroupSum(rows, func(r domain.EnrichedRow) float64 { return r.GrossMargin },
		func(r *domain.EnrichedRow, sum float64) { r.GroupProfit = sum })
	broadcastGroupSum(rows, func(r domain.EnrichedRow) float64 { return r.UnitsSold },
		func(r *domain.EnrichedRow, sum float64) { r.GroupVolume = sum })
	broadcastGroupSum(rows, func(r domain.EnrichedRow) float64 { return r.StockA },
		func(r *domain.EnrichedRow, sum float64) { r.GroupStockA = sum })
	broadcastGroupSum(rows, func(r domain.EnrichedRow) float64 { return r.StockB },
		func(r *domain.EnrichedRow, sum float64) { r.GroupStockB = sum })

	// Second join: advertising aggregates land at group level.
	for i := range rows {
		if rows[i].GroupCode == "" {
			continue
		}
		agg := adTotals[rows[i].GroupCode]
		rows[i].GroupAdSpend = agg.Spend
		rows[i].GroupAdUnits = agg.Units
	}

	for i := range rows {
		r := &rows[i]
		r.NetProfit = metrics.NetProfit(r.GroupProfit, r.GroupAdSpend)
		r.AdProfitRatio = metrics.AdProfitRatio(r.GroupAdSpend, r.GroupProfit)
		r.OrganicUnits = metrics.OrganicVolume(r.GroupVolume, r.GroupAdUnits)
		r.OrganicRatio = metrics.OrganicRatio(r.OrganicUnits, r.GroupVolume)

		r.TotalStock = r.StockA + r.StockB
		r.InventoryValue = metrics.InventoryValue(r.TotalStock, r.UnitCost)
		r.SafetyStock = metrics.SafetyStock(r.UnitsSold)
		r.RedundancyQty = metrics.RedundancyThreshold(r.UnitsSold)
		r.RestockQty = metrics.RestockQuantity(r.SafetyStock, r.TotalStock)
		r.DeadStockValue = metrics.DeadStockValue(r.InventoryValue, r.TotalStock, r.RedundancyQty)
	}

	out := report.Project(rows)
	summary := Summary{
		CatalogRows:    len(rows),
		ProductGroups:  len(out.ProductBusiness),
		SalesKeys:      len(salesTotals),
		AdGroups:       len(adTotals),
		InventoryAKeys: len(stockATotals),
		InventoryBKeys: len(stockBTotals),
	}
	return out, summary, nil
}

// loadCatalog materializes the master table into enriched rows with
// their normalized join keys. The catalog's internal code column is the
// group key; a code that normalizes to nothing leaves the row ungrouped.
func loadCatalog(master Source) []domain.EnrichedRow {
	cols := master.Columns
	rows := make([]domain.EnrichedRow, 0, len(master.Table.Rows))
	for _, raw := range master.Table.Rows {
		row := domain.EnrichedRow{
			CatalogRow: domain.CatalogRow{
				Code:       table.Cell(raw, cols["code"]),
				SKU:        table.Cell(raw, cols["sku"]),
				Barcode:    table.Cell(raw, cols["barcode"]),
				UnitCost:   Number(table.Cell(raw, cols["unit_cost"])),
				UnitMargin: Number(table.Cell(raw, cols["unit_margin"])),
			},
		}
		row.SKUKey = match.Key(row.SKU)
		row.BarcodeKey = match.BarcodeKey(row.Barcode)
		row.GroupCode = match.Key(row.Code)
		rows = append(rows, row)
	}
	return rows
}

// broadcastGroupSum computes the sum of value across each product group
// and writes the group's sum back onto every member row (broadcast, not
// reduce: output positions equal input positions). Rows without a group
// code join no group; they are skipped, never bucketed together.
func broadcastGroupSum(rows []domain.EnrichedRow, value func(domain.EnrichedRow) float64, assign func(*domain.EnrichedRow, float64)) {
	sums := make(map[string]float64)
	for _, r := range rows {
		if r.GroupCode == "" {
			continue
		}
		sums[r.GroupCode] += value(r)
	}
	for i := range rows {
		if rows[i].GroupCode == "" {
			continue
		}
		assign(&rows[i], sums[rows[i].GroupCode])
	}
}
