package pipeline

import (
	"testing"

	"github.com/rvillem/skuledger/internal/match"
	"github.com/rvillem/skuledger/internal/table"
)

func TestNumberCoercesGarbageToZero(t *testing.T) {
	cases := map[string]float64{
		"5":      5,
		" 3.25 ": 3.25,
		"-2":     -2,
		"":       0,
		"n/a":    0,
		"12x":    0,
		"NaN":    0,
		"Inf":    0,
	}
	for in, want := range cases {
		if got := Number(in); got != want {
			t.Fatalf("Number(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSalesTotalsGroupsByNormalizedKey(t *testing.T) {
	tbl := table.Table{
		Headers: []string{"sku", "units"},
		Rows: [][]string{
			{"s1", "2"},
			{" S1 ", "3"},     // same key after normalization
			{"S1.0", "1"},     // spreadsheet float rendering
			{"", "99"},        // no key: dropped, not zero-bucketed
			{"S2", "garbage"}, // unparseable measure coerces to zero
		},
	}
	totals := SalesTotals(tbl, table.ColumnIndex{"sku": 0, "units": 1})

	if len(totals) != 2 {
		t.Fatalf("expected 2 keys, got %d: %v", len(totals), totals)
	}
	if totals["S1"] != 6 {
		t.Fatalf("S1 total = %v, want 6", totals["S1"])
	}
	if totals["S2"] != 0 {
		t.Fatalf("S2 total = %v, want 0", totals["S2"])
	}
}

func TestAdSpendTotalsAppliesTaxPerRecord(t *testing.T) {
	tbl := table.Table{
		Headers: []string{"ad_group", "campaign", "spend", "units"},
		Rows: [][]string{
			{"C1 spring", "", "100", "2"},
			{"no code", "brand C1", "50", "1"}, // campaign fallback
			{"no code", "no code either", "40", "9"}, // unmatched: excluded
		},
	}
	totals := AdSpendTotals(tbl, table.ColumnIndex{"ad_group": 0, "campaign": 1, "spend": 2, "units": 3})

	if len(totals) != 1 {
		t.Fatalf("expected 1 group, got %v", totals)
	}
	agg := totals["C1"]
	if agg.Spend < 164.99 || agg.Spend > 165.01 { // (100+50) * 1.1
		t.Fatalf("tax-inclusive spend = %v, want 165", agg.Spend)
	}
	if agg.Units != 3 {
		t.Fatalf("ad units = %v, want 3", agg.Units)
	}
}

func TestAdSpendTotalsWithoutUnitsColumn(t *testing.T) {
	tbl := table.Table{
		Headers: []string{"ad_group", "spend"},
		Rows:    [][]string{{"C1 spring", "100"}},
	}
	// campaign and units are unbound (-1).
	totals := AdSpendTotals(tbl, table.ColumnIndex{"ad_group": 0, "campaign": -1, "spend": 1, "units": -1})

	agg := totals["C1"]
	if agg.Units != 0 {
		t.Fatalf("unbound units column must aggregate to zero, got %v", agg.Units)
	}
	if agg.Spend < 109.99 || agg.Spend > 110.01 {
		t.Fatalf("spend = %v, want 110", agg.Spend)
	}
}

func TestInventoryTotalsBarcodeKey(t *testing.T) {
	tbl := table.Table{
		Headers: []string{"barcode", "qty"},
		Rows: [][]string{
			{"8.8E+12", "5"},
			{"8800000000000", "7"},
		},
	}
	totals := InventoryTotals(tbl, table.ColumnIndex{"barcode": 0, "quantity": 1}, "barcode", match.BarcodeKey)

	if len(totals) != 1 || totals["8800000000000"] != 12 {
		t.Fatalf("both renderings must land on one key: %v", totals)
	}
}
