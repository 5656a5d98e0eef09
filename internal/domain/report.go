package domain

// SKUProfitRow is one row of the SKU profit view: one per catalog SKU,
// in master-file order.
type SKUProfitRow struct {
	Code         string
	SKU          string
	UnitsSold    float64
	GrossMargin  float64
	GroupProfit  float64
	GroupAdSpend float64
	NetProfit    float64
}

// ProductBusinessRow is one row of the product business view: one per
// distinct product group, ordered by the group's first appearance in
// the master catalog.
type ProductBusinessRow struct {
	GroupCode     string
	Profit        float64
	AdSpend       float64
	NetProfit     float64
	Volume        float64
	AdUnits       float64
	OrganicUnits  float64
	OrganicRatio  float64
	AdProfitRatio float64
	StockA        float64
	StockB        float64
	TotalStock    float64
}

// SKUInventoryRow is one row of the SKU inventory view: one per catalog
// SKU, in master-file order.
type SKUInventoryRow struct {
	Code           string
	SKU            string
	Barcode        string
	StockA         float64
	StockB         float64
	TotalStock     float64
	InventoryValue float64
	DeadStockValue float64
	SafetyStock    float64
	RedundancyQty  float64
	RestockQty     float64
}

// Report bundles the three output views handed to the exporter.
type Report struct {
	SKUProfit       []SKUProfitRow
	ProductBusiness []ProductBusinessRow
	SKUInventory    []SKUInventoryRow
}
