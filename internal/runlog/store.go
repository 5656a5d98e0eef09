// Package runlog keeps a local history of pipeline runs in SQLite. The
// pipeline itself stays stateless; the CLI records one row per
// invocation after it completes or fails.
package runlog

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id           TEXT PRIMARY KEY,
	started_at       TEXT NOT NULL,
	finished_at      TEXT NOT NULL DEFAULT '',
	catalog_rows     INTEGER NOT NULL DEFAULT 0,
	product_groups   INTEGER NOT NULL DEFAULT 0,
	sales_keys       INTEGER NOT NULL DEFAULT 0,
	ad_groups        INTEGER NOT NULL DEFAULT 0,
	inventory_a_keys INTEGER NOT NULL DEFAULT 0,
	inventory_b_keys INTEGER NOT NULL DEFAULT 0,
	output_path      TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL,
	error            TEXT NOT NULL DEFAULT ''
);
`

// Run statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Entry is one recorded pipeline run.
type Entry struct {
	RunID          string
	StartedAt      time.Time
	FinishedAt     time.Time
	CatalogRows    int
	ProductGroups  int
	SalesKeys      int
	AdGroups       int
	InventoryAKeys int
	InventoryBKeys int
	OutputPath     string
	Status         string
	Error          string
}

// Store is the SQLite-backed run history.
type Store struct {
	db *sqlx.DB
}

// Open opens (or creates) the run-history database at path.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create run log schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts or replaces the entry for one run.
func (s *Store) Record(e Entry) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO runs
		(run_id, started_at, finished_at, catalog_rows, product_groups,
		 sales_keys, ad_groups, inventory_a_keys, inventory_b_keys,
		 output_path, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID,
		timeToString(e.StartedAt),
		timeToString(e.FinishedAt),
		e.CatalogRows,
		e.ProductGroups,
		e.SalesKeys,
		e.AdGroups,
		e.InventoryAKeys,
		e.InventoryBKeys,
		e.OutputPath,
		e.Status,
		e.Error,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", e.RunID, err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`SELECT run_id, started_at, finished_at, catalog_rows,
		product_groups, sales_keys, ad_groups, inventory_a_keys, inventory_b_keys,
		output_path, status, error
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var startedAt, finishedAt string
		if err := rows.Scan(&e.RunID, &startedAt, &finishedAt, &e.CatalogRows,
			&e.ProductGroups, &e.SalesKeys, &e.AdGroups, &e.InventoryAKeys, &e.InventoryBKeys,
			&e.OutputPath, &e.Status, &e.Error); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		e.StartedAt = parseTime(startedAt)
		e.FinishedAt = parseTime(finishedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func timeToString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
