// Package metrics holds the derived per-row and per-group figures as
// pure functions. Every function is total: zero-denominator and no-data
// cases return a defined value instead of NaN or an error.
package metrics

import "math"

const (
	// Safety stock and redundancy threshold are fixed multiples of the
	// most recent per-unit sales volume.
	safetyStockFactor = 3
	redundancyFactor  = 8

	// Inventory is valued at cost plus a fixed markup.
	inventoryMarkup = 1.2
)

// NetProfit is the product group's profit after advertising spend.
func NetProfit(groupProfit, adSpend float64) float64 {
	return groupProfit - adSpend
}

// AdProfitRatio reports ad spend relative to product profit. A
// zero-profit product reports 0, never a division by zero.
func AdProfitRatio(adSpend, groupProfit float64) float64 {
	if groupProfit == 0 {
		return 0
	}
	return adSpend / groupProfit
}

// OrganicVolume is the sales volume not attributed to advertising.
func OrganicVolume(totalVolume, adVolume float64) float64 {
	return totalVolume - adVolume
}

// OrganicRatio is the organic share of total volume, 0 when the product
// sold nothing.
func OrganicRatio(organicVolume, totalVolume float64) float64 {
	if totalVolume == 0 {
		return 0
	}
	return organicVolume / totalVolume
}

// SafetyStock is the minimum inventory level below which a restock is
// recommended.
func SafetyStock(recentUnitSales float64) float64 {
	return recentUnitSales * safetyStockFactor
}

// RedundancyThreshold is the inventory level at or above which stock
// counts as dead.
func RedundancyThreshold(recentUnitSales float64) float64 {
	return recentUnitSales * redundancyFactor
}

// RestockQuantity is how many units are needed to reach safety stock,
// zero once inventory meets or exceeds it.
func RestockQuantity(safetyStock, totalInventory float64) float64 {
	return math.Max(0, safetyStock-totalInventory)
}

// InventoryValue prices the stock on hand at marked-up unit cost.
func InventoryValue(totalInventory, unitCost float64) float64 {
	return totalInventory * unitCost * inventoryMarkup
}

// DeadStockValue is the inventory value when stock meets or exceeds the
// redundancy threshold. A SKU with no stock and no sales history
// reports 0: zero inventory at a zero threshold is "no data", not dead
// stock, even though 0 >= 0 holds.
func DeadStockValue(inventoryValue, totalInventory, redundancyThreshold float64) float64 {
	if totalInventory == 0 && redundancyThreshold == 0 {
		return 0
	}
	if totalInventory >= redundancyThreshold {
		return inventoryValue
	}
	return 0
}
