// Package report slices the enriched catalog into the three output
// views. Projection never reorders, drops, or duplicates SKU rows; the
// business view reduces to one row per product group.
package report

import "github.com/rvillem/skuledger/internal/domain"

// Project builds the three report views from the enriched rows. The SKU
// views keep one row per catalog row in master-file order. The business
// view keeps the first row encountered per group code, so its order
// matches each group's first appearance in the source catalog;
// downstream presentation relies on that adjacency. Rows without a
// group code appear only in the SKU views.
func Project(rows []domain.EnrichedRow) domain.Report {
	out := domain.Report{
		SKUProfit:       make([]domain.SKUProfitRow, 0, len(rows)),
		ProductBusiness: make([]domain.ProductBusinessRow, 0, len(rows)),
		SKUInventory:    make([]domain.SKUInventoryRow, 0, len(rows)),
	}
	seen := make(map[string]bool)

	for _, r := range rows {
		out.SKUProfit = append(out.SKUProfit, domain.SKUProfitRow{
			Code:         r.Code,
			SKU:          r.SKU,
			UnitsSold:    r.UnitsSold,
			GrossMargin:  r.GrossMargin,
			GroupProfit:  r.GroupProfit,
			GroupAdSpend: r.GroupAdSpend,
			NetProfit:    r.NetProfit,
		})

		out.SKUInventory = append(out.SKUInventory, domain.SKUInventoryRow{
			Code:           r.Code,
			SKU:            r.SKU,
			Barcode:        r.Barcode,
			StockA:         r.StockA,
			StockB:         r.StockB,
			TotalStock:     r.TotalStock,
			InventoryValue: r.InventoryValue,
			DeadStockValue: r.DeadStockValue,
			SafetyStock:    r.SafetyStock,
			RedundancyQty:  r.RedundancyQty,
			RestockQty:     r.RestockQty,
		})

		if r.GroupCode == "" || seen[r.GroupCode] {
			continue
		}
		seen[r.GroupCode] = true
		out.ProductBusiness = append(out.ProductBusiness, domain.ProductBusinessRow{
			GroupCode:     r.GroupCode,
			Profit:        r.GroupProfit,
			AdSpend:       r.GroupAdSpend,
			NetProfit:     r.NetProfit,
			Volume:        r.GroupVolume,
			AdUnits:       r.GroupAdUnits,
			OrganicUnits:  r.OrganicUnits,
			OrganicRatio:  r.OrganicRatio,
			AdProfitRatio: r.AdProfitRatio,
			StockA:        r.GroupStockA,
			StockB:        r.GroupStockB,
			TotalStock:    r.GroupStockA + r.GroupStockB,
		})
	}
	return out
}
