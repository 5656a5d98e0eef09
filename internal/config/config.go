// Package config loads the run configuration: which files feed each
// logical source and which column carries each logical role. Nothing
// about column layout is hard-coded anywhere else; reordering a source
// file only ever requires a config change.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Source configures one logical input.
type Source struct {
	// Files to concatenate into the source's table, in order.
	Files []string `mapstructure:"files"`
	// Addressing is "position" (zero-based column indices) or "header"
	// (column names, validated against the file). Defaults to position.
	Addressing string `mapstructure:"addressing"`
	// Columns binds logical roles (sku, units, spend, ...) to columns.
	Columns map[string]string `mapstructure:"columns"`
}

// Output configures where the report workbook lands.
type Output struct {
	Dir string `mapstructure:"dir"`
}

// RunLog configures the local run-history database.
type RunLog struct {
	Path string `mapstructure:"path"`
}

// Config is the full configuration of one pipeline invocation.
type Config struct {
	Master     Source `mapstructure:"master"`
	Sales      Source `mapstructure:"sales"`
	Ads        Source `mapstructure:"ads"`
	InventoryA Source `mapstructure:"inventory_a"`
	InventoryB Source `mapstructure:"inventory_b"`
	Output     Output `mapstructure:"output"`
	RunLog     RunLog `mapstructure:"runlog"`
}

// Load reads the YAML config at path, applies defaults, and allows
// environment overrides with the SKULEDGER_ prefix (SKULEDGER_OUTPUT_DIR
// and friends).
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SKULEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("output.dir", ".")
	v.SetDefault("runlog.path", "skuledger.db")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate checks everything that can be checked without opening input
// files: the mandatory sources have files, and every source binds its
// required roles. Header/position resolution against the actual files
// happens later, in the table package.
func (c Config) validate() error {
	var problems []string

	requireFiles := func(name string, s Source) {
		if len(s.Files) == 0 {
			problems = append(problems, fmt.Sprintf("%s: at least one file is required", name))
		}
	}
	requireFiles("master", c.Master)
	requireFiles("sales", c.Sales)
	requireFiles("ads", c.Ads)

	requireRoles := func(name string, s Source, roles ...string) {
		if len(s.Files) == 0 {
			return // optional source left unconfigured
		}
		var missing []string
		for _, role := range roles {
			if strings.TrimSpace(s.Columns[role]) == "" {
				missing = append(missing, role)
			}
		}
		if len(missing) > 0 {
			problems = append(problems, fmt.Sprintf("%s: missing column bindings: %s", name, strings.Join(missing, ", ")))
		}
	}
	requireRoles("master", c.Master, "code", "sku", "barcode", "unit_cost", "unit_margin")
	requireRoles("sales", c.Sales, "sku", "units")
	requireRoles("ads", c.Ads, "ad_group", "spend")
	requireRoles("inventory_a", c.InventoryA, "sku", "quantity")
	requireRoles("inventory_b", c.InventoryB, "barcode", "quantity")

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
