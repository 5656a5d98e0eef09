package report

import (
	"testing"

	"github.com/rvillem/skuledger/internal/domain"
)

func enriched(code, group, sku string) domain.EnrichedRow {
	row := domain.EnrichedRow{CatalogRow: domain.CatalogRow{Code: code, SKU: sku}}
	row.GroupCode = group
	return row
}

func TestProjectKeepsOneRowPerSKU(t *testing.T) {
	rows := []domain.EnrichedRow{
		enriched("c1", "C1", "S1"),
		enriched("c1", "C1", "S2"),
		enriched("c2", "C2", "S3"),
	}

	out := Project(rows)
	if len(out.SKUProfit) != 3 || len(out.SKUInventory) != 3 {
		t.Fatalf("SKU views must keep every catalog row: profit=%d inventory=%d",
			len(out.SKUProfit), len(out.SKUInventory))
	}
	if out.SKUProfit[0].SKU != "S1" || out.SKUProfit[2].SKU != "S3" {
		t.Fatalf("SKU view order must follow the catalog: %+v", out.SKUProfit)
	}
}

func TestProjectBusinessViewFirstOccurrenceOrder(t *testing.T) {
	rows := []domain.EnrichedRow{
		enriched("b2", "B2", "S1"),
		enriched("a1", "A1", "S2"),
		enriched("b2", "B2", "S3"),
		enriched("a1", "A1", "S4"),
	}

	out := Project(rows)
	if len(out.ProductBusiness) != 2 {
		t.Fatalf("expected one business row per group, got %d", len(out.ProductBusiness))
	}
	if out.ProductBusiness[0].GroupCode != "B2" || out.ProductBusiness[1].GroupCode != "A1" {
		t.Fatalf("business view must follow first appearance in the catalog, got %+v", out.ProductBusiness)
	}
}

func TestProjectExcludesUngroupedRowsFromBusinessView(t *testing.T) {
	rows := []domain.EnrichedRow{
		enriched("", "", "S1"),
		enriched("c9", "C9", "S2"),
	}

	out := Project(rows)
	if len(out.ProductBusiness) != 1 || out.ProductBusiness[0].GroupCode != "C9" {
		t.Fatalf("ungrouped rows must not reach the business view: %+v", out.ProductBusiness)
	}
	if len(out.SKUProfit) != 2 {
		t.Fatalf("ungrouped rows must still appear in the SKU views")
	}
}
