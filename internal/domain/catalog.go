package domain

// CatalogRow is one stock-keeping unit from the master catalog. The
// catalog is immutable for the duration of a run; everything the
// pipeline derives lands on EnrichedRow instead.
type CatalogRow struct {
	Code       string // internal product code; shared by all SKUs of a product group
	SKU        string
	Barcode    string
	UnitCost   float64
	UnitMargin float64 // gross margin per unit sold
}

// EnrichedRow is a CatalogRow plus every joined and derived field. The
// pipeline keeps exactly one EnrichedRow per CatalogRow, in master-file
// order, from the first join to the final projection.
type EnrichedRow struct {
	CatalogRow

	// Join keys, fixed at load time.
	SKUKey     string // normalized SKU; key for sales and warehouse A
	BarcodeKey string // normalized barcode; key for warehouse B
	GroupCode  string // normalized product-group code; empty when the row has no group

	// Per-unit figures.
	UnitsSold   float64
	GrossMargin float64 // UnitsSold * UnitMargin

	// Product-group totals, broadcast onto every member row. Rows
	// without a group code keep these at zero and belong to no group.
	GroupProfit  float64
	GroupVolume  float64
	GroupStockA  float64
	GroupStockB  float64
	GroupAdSpend float64 // tax-inclusive
	GroupAdUnits float64

	// Derived profitability.
	NetProfit     float64
	AdProfitRatio float64
	OrganicUnits  float64
	OrganicRatio  float64

	// Inventory health.
	StockA         float64
	StockB         float64
	TotalStock     float64
	InventoryValue float64
	SafetyStock    float64
	RedundancyQty  float64
	RestockQty     float64
	DeadStockValue float64
}
