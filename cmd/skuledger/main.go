package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/rvillem/skuledger/internal/config"
	"github.com/rvillem/skuledger/internal/export"
	"github.com/rvillem/skuledger/internal/pipeline"
	"github.com/rvillem/skuledger/internal/runlog"
	"github.com/rvillem/skuledger/internal/table"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the run configuration")
	outDir := flag.String("out", "", "override the configured output directory")
	history := flag.Int("history", 0, "print the last N recorded runs and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	store, err := runlog.Open(cfg.RunLog.Path)
	if err != nil {
		log.Fatalf("Failed to open run log: %v", err)
	}
	defer store.Close()

	if *history > 0 {
		printHistory(store, *history)
		return
	}

	runID := uuid.New()
	entry := runlog.Entry{RunID: runID.String(), StartedAt: time.Now()}
	log.Printf("[pipeline] run %s starting", runID)

	outputPath, summary, err := run(cfg, runID)
	entry.FinishedAt = time.Now()
	if err != nil {
		entry.Status = runlog.StatusFailed
		entry.Error = err.Error()
		if recordErr := store.Record(entry); recordErr != nil {
			log.Printf("[runlog] failed to record run %s: %v", runID, recordErr)
		}
		log.Fatalf("Run %s failed: %v", runID, err)
	}

	entry.Status = runlog.StatusCompleted
	entry.OutputPath = outputPath
	entry.CatalogRows = summary.CatalogRows
	entry.ProductGroups = summary.ProductGroups
	entry.SalesKeys = summary.SalesKeys
	entry.AdGroups = summary.AdGroups
	entry.InventoryAKeys = summary.InventoryAKeys
	entry.InventoryBKeys = summary.InventoryBKeys
	if err := store.Record(entry); err != nil {
		log.Printf("[runlog] failed to record run %s: %v", runID, err)
	}

	log.Printf("[pipeline] run %s completed (catalog=%d groups=%d sales_keys=%d ad_groups=%d)",
		runID, summary.CatalogRows, summary.ProductGroups, summary.SalesKeys, summary.AdGroups)
	log.Printf("[export] report written to %s", outputPath)
}

// run loads every source, executes the pipeline, and writes the report
// workbook. Any failure aborts the whole invocation; partial reports
// are never produced.
func run(cfg config.Config, runID uuid.UUID) (string, pipeline.Summary, error) {
	in := pipeline.Inputs{}
	var err error

	if in.Master, err = loadSource("master", cfg.Master, pipeline.MasterRoles); err != nil {
		return "", pipeline.Summary{}, err
	}
	if in.Sales, err = loadSource("sales", cfg.Sales, pipeline.SalesRoles); err != nil {
		return "", pipeline.Summary{}, err
	}
	if in.Ads, err = loadSource("ads", cfg.Ads, pipeline.AdsRoles); err != nil {
		return "", pipeline.Summary{}, err
	}
	if in.InventoryA, err = loadSource("inventory_a", cfg.InventoryA, pipeline.InventoryARoles); err != nil {
		return "", pipeline.Summary{}, err
	}
	if in.InventoryB, err = loadSource("inventory_b", cfg.InventoryB, pipeline.InventoryBRoles); err != nil {
		return "", pipeline.Summary{}, err
	}

	report, summary, err := pipeline.Run(in)
	if err != nil {
		return "", pipeline.Summary{}, err
	}

	outputPath, err := export.NewWriter(cfg.Output.Dir).Write(report, runID)
	if err != nil {
		return "", pipeline.Summary{}, err
	}
	return outputPath, summary, nil
}

// loadSource reads and concatenates a source's files and resolves its
// column bindings. A source with no configured files (the inventory
// extracts are zero-or-many) yields an empty table the aggregators
// treat as no data.
func loadSource(name string, src config.Source, roles table.Roles) (pipeline.Source, error) {
	if len(src.Files) == 0 {
		return pipeline.Source{}, nil
	}
	tbl, err := table.ReadAll(src.Files)
	if err != nil {
		return pipeline.Source{}, fmt.Errorf("source %s: %w", name, err)
	}
	cols, err := table.Resolve(tbl, name, table.Addressing(src.Addressing), src.Columns, roles)
	if err != nil {
		return pipeline.Source{}, err
	}
	log.Printf("[loader] source %s: %d rows from %d file(s)", name, len(tbl.Rows), len(src.Files))
	return pipeline.Source{Table: tbl, Columns: cols}, nil
}

func printHistory(store *runlog.Store, limit int) {
	entries, err := store.List(limit)
	if err != nil {
		log.Fatalf("Failed to list runs: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println("no recorded runs")
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %s  %s  catalog=%d groups=%d",
			e.StartedAt.Format(time.RFC3339), e.RunID, e.Status, e.CatalogRows, e.ProductGroups)
		if e.Status == runlog.StatusFailed {
			line += "  error=" + e.Error
		} else if e.OutputPath != "" {
			line += "  output=" + e.OutputPath
		}
		fmt.Println(line)
	}
}
