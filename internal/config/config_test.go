package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validYAML = `
master:
  files: [master.xlsx]
  addressing: header
  columns:
    code: product_code
    sku: sku
    barcode: barcode
    unit_cost: cost
    unit_margin: margin
sales:
  files: [sales.csv]
  columns:
    sku: "0"
    units: "8"
ads:
  files: [ads.csv]
  columns:
    ad_group: "5"
    campaign: "4"
    spend: "15"
inventory_a:
  files: [wh_a.csv]
  columns:
    sku: "1"
    quantity: "3"
output:
  dir: reports
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Master.Addressing != "header" || cfg.Master.Columns["code"] != "product_code" {
		t.Fatalf("master source parsed wrong: %+v", cfg.Master)
	}
	if cfg.Sales.Columns["units"] != "8" {
		t.Fatalf("sales source parsed wrong: %+v", cfg.Sales)
	}
	if cfg.Output.Dir != "reports" {
		t.Fatalf("output dir = %q, want reports", cfg.Output.Dir)
	}
	if cfg.RunLog.Path != "skuledger.db" {
		t.Fatalf("runlog path default missing: %q", cfg.RunLog.Path)
	}
	if len(cfg.InventoryB.Files) != 0 {
		t.Fatalf("unconfigured inventory source must stay empty: %+v", cfg.InventoryB)
	}
}

func TestLoadRejectsMissingBindings(t *testing.T) {
	broken := `
master:
  files: [master.xlsx]
  columns:
    code: "0"
sales:
  files: [sales.csv]
  columns:
    sku: "0"
ads:
  files: [ads.csv]
  columns:
    spend: "15"
`
	_, err := Load(writeConfig(t, broken))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	// Every missing binding must be named, across all sources.
	for _, want := range []string{"unit_cost", "unit_margin", "units", "ad_group"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error must name %s, got: %v", want, err)
		}
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
