package metrics

import (
	"math"
	"testing"
)

func TestNetProfit(t *testing.T) {
	if got := NetProfit(50, 110); got != -60 {
		t.Fatalf("NetProfit(50, 110) = %v, want -60", got)
	}
}

func TestAdProfitRatioZeroProfit(t *testing.T) {
	if got := AdProfitRatio(0, 0); got != 0 {
		t.Fatalf("zero-spend zero-profit product must report 0, got %v", got)
	}
	if got := AdProfitRatio(100, 0); got != 0 {
		t.Fatalf("zero-profit product must report 0, got %v", got)
	}
	if got := AdProfitRatio(25, 100); got != 0.25 {
		t.Fatalf("AdProfitRatio(25, 100) = %v, want 0.25", got)
	}
	if math.IsNaN(AdProfitRatio(0, 0)) || math.IsInf(AdProfitRatio(1, 0), 0) {
		t.Fatalf("ratio must always be finite")
	}
}

func TestOrganicRatio(t *testing.T) {
	organic := OrganicVolume(10, 4)
	if organic != 6 {
		t.Fatalf("OrganicVolume(10, 4) = %v, want 6", organic)
	}
	if got := OrganicRatio(organic, 10); got != 0.6 {
		t.Fatalf("OrganicRatio(6, 10) = %v, want 0.6", got)
	}
	if got := OrganicRatio(0, 0); got != 0 {
		t.Fatalf("zero-volume product must report 0, got %v", got)
	}
}

func TestSafetyStockAndRedundancy(t *testing.T) {
	if got := SafetyStock(5); got != 15 {
		t.Fatalf("SafetyStock(5) = %v, want 15", got)
	}
	if got := RedundancyThreshold(5); got != 40 {
		t.Fatalf("RedundancyThreshold(5) = %v, want 40", got)
	}
}

func TestRestockQuantityNeverNegative(t *testing.T) {
	if got := RestockQuantity(15, 4); got != 11 {
		t.Fatalf("RestockQuantity(15, 4) = %v, want 11", got)
	}
	if got := RestockQuantity(15, 15); got != 0 {
		t.Fatalf("inventory at safety stock must need no restock, got %v", got)
	}
	if got := RestockQuantity(15, 40); got != 0 {
		t.Fatalf("overstocked row must need no restock, got %v", got)
	}
}

func TestInventoryValue(t *testing.T) {
	if got := InventoryValue(10, 5); got != 60 {
		t.Fatalf("InventoryValue(10, 5) = %v, want 60", got)
	}
}

func TestDeadStockValue(t *testing.T) {
	// Stock at or above the threshold is dead.
	if got := DeadStockValue(120, 40, 40); got != 120 {
		t.Fatalf("stock at threshold must be dead, got %v", got)
	}
	if got := DeadStockValue(120, 39, 40); got != 0 {
		t.Fatalf("stock below threshold must not be dead, got %v", got)
	}
	// No stock and no sales history is "no data", not dead stock.
	if got := DeadStockValue(0, 0, 0); got != 0 {
		t.Fatalf("zero-data SKU must report 0, got %v", got)
	}
	// Zero threshold with stock on hand: everything on hand is dead.
	if got := DeadStockValue(12, 10, 0); got != 12 {
		t.Fatalf("stock with no sales velocity is dead, got %v", got)
	}
}
