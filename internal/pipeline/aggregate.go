package pipeline

import (
	"math"
	"strconv"
	"strings"

	"github.com/rvillem/skuledger/internal/match"
	"github.com/rvillem/skuledger/internal/table"
)

// Statutory surcharge applied to every advertising-spend record before
// summation. Multiplying per record (rather than once per aggregate)
// keeps the door open for per-record factors later.
const adTaxFactor = 1.1

// Number parses a numeric cell. Malformed numbers are business as usual
// in uncurated exports, so anything unparseable coerces to zero.
func Number(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// SalesTotals sums units sold per normalized SKU key. Records whose SKU
// does not normalize to a key are dropped from the aggregation.
func SalesTotals(tbl table.Table, cols table.ColumnIndex) map[string]float64 {
	totals := make(map[string]float64)
	for _, row := range tbl.Rows {
		key := match.Key(table.Cell(row, cols["sku"]))
		if key == "" {
			continue
		}
		totals[key] += Number(table.Cell(row, cols["units"]))
	}
	return totals
}

// AdTotals carries the summed advertising measures for one product group.
type AdTotals struct {
	Spend float64 // tax-inclusive
	Units float64 // ad-driven sales volume
}

// AdSpendTotals sums tax-inclusive spend and ad-driven units per product
// group. The group code is extracted from the ad-group name, falling
// back to the campaign name; records with neither are excluded.
func AdSpendTotals(tbl table.Table, cols table.ColumnIndex) map[string]AdTotals {
	totals := make(map[string]AdTotals)
	for _, row := range tbl.Rows {
		code := match.GroupCode(
			table.Cell(row, cols["ad_group"]),
			table.Cell(row, cols["campaign"]),
		)
		if code == "" {
			continue
		}
		agg := totals[code]
		agg.Spend += Number(table.Cell(row, cols["spend"])) * adTaxFactor
		agg.Units += Number(table.Cell(row, cols["units"]))
		totals[code] = agg
	}
	return totals
}

// InventoryTotals sums stock quantity per key. keyFn selects the
// identifier scheme of the warehouse system (SKU or barcode).
func InventoryTotals(tbl table.Table, cols table.ColumnIndex, keyRole string, keyFn func(string) string) map[string]float64 {
	totals := make(map[string]float64)
	for _, row := range tbl.Rows {
		key := keyFn(table.Cell(row, cols[keyRole]))
		if key == "" {
			continue
		}
		totals[key] += Number(table.Cell(row, cols["quantity"]))
	}
	return totals
}
