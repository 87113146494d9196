package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/pcp/pkg/domain/entities"
)

// Config holds the runtime settings of the planning tools
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Inventory InventoryConfig `yaml:"inventory"`
	LotSizing LotSizingConfig `yaml:"lot_sizing"`
	Planning  PlanningConfig  `yaml:"planning"`
	Cache     CacheConfig     `yaml:"cache"`
	HTTP      HTTPConfig      `yaml:"http"`
	Data      DataConfig      `yaml:"data"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type InventoryConfig struct {
	CriticalRatio float64 `yaml:"critical_ratio"`
}

// LotSizingConfig selects the safety stock policy. The service level
// settings only apply to the "service_level" policy.
type LotSizingConfig struct {
	SafetyStockPolicy   string  `yaml:"safety_stock_policy"`
	SafetyStockFraction float64 `yaml:"safety_stock_fraction"`
	ServiceLevelZ       float64 `yaml:"service_level_z"`
	DemandStdDev        float64 `yaml:"demand_std_dev"`
	LeadTimePeriods     float64 `yaml:"lead_time_periods"`
}

type PlanningConfig struct {
	StatusPolicy    string              `yaml:"status_policy"`
	DefaultScenario string              `yaml:"default_scenario"`
	Scenarios       []entities.Scenario `yaml:"scenarios"`
}

type CacheConfig struct {
	CostEntries int `yaml:"cost_entries"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type DataConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Inventory: InventoryConfig{
			CriticalRatio: 0.75,
		},
		LotSizing: LotSizingConfig{
			SafetyStockPolicy:   "fraction",
			SafetyStockFraction: 0.2,
			ServiceLevelZ:       1.65,
		},
		Planning: PlanningConfig{
			StatusPolicy:    "per_period",
			DefaultScenario: "baseline",
			Scenarios: []entities.Scenario{
				{Key: "baseline", Label: "Baseline", Multiplier: 1.0},
				{Key: "growth", Label: "Growth", Multiplier: 1.2},
				{Key: "contraction", Label: "Contraction", Multiplier: 0.8},
			},
		},
		Cache: CacheConfig{CostEntries: 1024},
		HTTP:  HTTPConfig{Addr: ":8080"},
	}
}

// Load reads .env (when present), overlays the YAML file at path (when
// given) on the defaults, applies PCP_* environment overrides and validates
// the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PCP_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PCP_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("PCP_HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("PCP_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("PCP_CRITICAL_RATIO"); v != "" {
		ratio, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid PCP_CRITICAL_RATIO %q: %w", v, err)
		}
		c.Inventory.CriticalRatio = ratio
	}
	return nil
}

// Validate rejects out-of-range ratios, unknown policy names and bad scenarios
func (c *Config) Validate() error {
	if r := c.Inventory.CriticalRatio; !(r > 0) || r > 1 {
		return fmt.Errorf("inventory.critical_ratio must be in (0,1], got %g", r)
	}

	switch c.LotSizing.SafetyStockPolicy {
	case "fraction":
		if f := c.LotSizing.SafetyStockFraction; !(f > 0) || f > 1 {
			return fmt.Errorf("lot_sizing.safety_stock_fraction must be in (0,1], got %g", f)
		}
	case "service_level":
		if z := c.LotSizing.ServiceLevelZ; !(z > 0) || math.IsInf(z, 1) {
			return fmt.Errorf("lot_sizing.service_level_z must be positive, got %g", z)
		}
		if !(c.LotSizing.DemandStdDev >= 0) || !(c.LotSizing.LeadTimePeriods >= 0) {
			return fmt.Errorf("lot_sizing service level settings cannot be negative")
		}
	default:
		return fmt.Errorf("unknown lot_sizing.safety_stock_policy: %s (expected: fraction or service_level)", c.LotSizing.SafetyStockPolicy)
	}

	switch c.Planning.StatusPolicy {
	case "per_period", "carry_over":
	default:
		return fmt.Errorf("unknown planning.status_policy: %s (expected: per_period or carry_over)", c.Planning.StatusPolicy)
	}

	if len(c.Planning.Scenarios) == 0 {
		return fmt.Errorf("planning.scenarios cannot be empty")
	}
	seen := make(map[string]bool)
	found := false
	for _, s := range c.Planning.Scenarios {
		if s.Key == "" {
			return fmt.Errorf("planning.scenarios: key cannot be empty")
		}
		if seen[s.Key] {
			return fmt.Errorf("planning.scenarios: duplicate key %s", s.Key)
		}
		seen[s.Key] = true
		if math.IsNaN(s.Multiplier) || math.IsInf(s.Multiplier, 0) || s.Multiplier <= 0 {
			return fmt.Errorf("scenario %s: %w: got %g", s.Key, entities.ErrInvalidMultiplier, s.Multiplier)
		}
		if s.Key == c.Planning.DefaultScenario {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("planning.default_scenario %s is not a configured scenario", c.Planning.DefaultScenario)
	}

	if c.Cache.CostEntries < 0 {
		return fmt.Errorf("cache.cost_entries cannot be negative, got %d", c.Cache.CostEntries)
	}
	return nil
}
