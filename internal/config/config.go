// Package config provides configuration management.
package config

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"printcost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Catalog contains product catalog configuration
	Catalog CatalogConfig `json:"catalog"`

	// Shipping contains shipping subsystem configuration
	Shipping ShippingConfig `json:"shipping"`

	// API contains HTTP API configuration
	API APIConfig `json:"api"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// CatalogConfig contains product catalog settings
type CatalogConfig struct {
	// Path is the directory holding catalog .hcl files
	Path string `json:"path"`
}

// ShippingConfig contains shipping subsystem settings.
// Read once at the start of an aggregation and treated as immutable for
// the duration of the request.
type ShippingConfig struct {
	// EnabledProviders lists provider ids allowed to quote
	EnabledProviders []string `json:"enabled_providers"`

	// ProviderPriority orders providers for display grouping
	ProviderPriority map[string]int `json:"provider_priority,omitempty"`

	// MarkupPercentage is the multiplicative markup on carrier rates
	// (1.05 means 5% markup)
	MarkupPercentage float64 `json:"markup_percentage"`

	// TestMode makes providers return deterministic stub quotes
	TestMode bool `json:"test_mode"`

	// IntelligentPackingEnabled enables box-size selection by weight
	IntelligentPackingEnabled bool `json:"intelligent_packing_enabled"`

	// ProviderTimeoutSeconds bounds each provider call during aggregation
	ProviderTimeoutSeconds int `json:"provider_timeout_seconds"`

	// OriginState is the shipping origin state code
	OriginState string `json:"origin_state"`

	// PackagingOverheadLbs is added to every estimated package weight
	PackagingOverheadLbs float64 `json:"packaging_overhead_lbs"`
}

// IsProviderEnabled reports whether a provider id is in the enabled set
func (s ShippingConfig) IsProviderEnabled(id string) bool {
	for _, p := range s.EnabledProviders {
		if p == id {
			return true
		}
	}
	return false
}

// PriorityFor returns the configured display priority for a provider.
// Providers without an entry sort after every configured one.
func (s ShippingConfig) PriorityFor(id string) int {
	if p, ok := s.ProviderPriority[id]; ok {
		return p
	}
	return math.MaxInt
}

// APIConfig contains HTTP API settings
type APIConfig struct {
	// ListenAddress is the address the API server binds to
	ListenAddress string `json:"listen_address"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	catalogDir := filepath.Join(homeDir, ".printcost", "catalog")

	return &Config{
		Version: "1.0",
		Catalog: CatalogConfig{
			Path: catalogDir,
		},
		Shipping: ShippingConfig{
			EnabledProviders:          []string{"fedex", "southwest-cargo"},
			ProviderPriority:          map[string]int{"southwest-cargo": 1, "fedex": 2},
			MarkupPercentage:          1.05,
			TestMode:                  true,
			IntelligentPackingEnabled: true,
			ProviderTimeoutSeconds:    10,
			OriginState:               "TX",
			PackagingOverheadLbs:      1.0,
		},
		API: APIConfig{
			ListenAddress: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
