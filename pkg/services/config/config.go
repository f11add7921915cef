package config

import (
	"fmt"
	"strings"

	"github.com/mathe-alves-alv/analise-dre/pkg/services/catalog"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/metrics"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/normalize"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const EnvPrefix = "DRE"

type Config struct {
	LogLevel  string          `mapstructure:"log_level"`
	Server    ServerConfig    `mapstructure:"server"`
	Markup    MarkupConfig    `mapstructure:"markup"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Inventory InventoryConfig `mapstructure:"inventory"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type MarkupConfig struct {
	TargetProfitRatio   string `mapstructure:"target_profit_ratio"`
	IncludeEventRevenue bool   `mapstructure:"include_event_revenue"`
}

type CatalogConfig struct {
	Default string            `mapstructure:"default"`
	Files   map[string]string `mapstructure:"files"`
}

type InventoryConfig struct {
	File string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", zerolog.InfoLevel.String())
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("markup.target_profit_ratio", metrics.DefaultTargetProfitRatio.String())
	v.SetDefault("markup.include_event_revenue", false)
	v.SetDefault("catalog.default", catalog.DefaultName)
	v.SetDefault("inventory.file", "")
}

// LoadConfig reads the application config. An empty path uses defaults and
// DRE_ prefixed environment variables only (DRE_SERVER_PORT, ...).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	if _, err := cfg.TargetProfitRatio(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func (c *Config) TargetProfitRatio() (decimal.Decimal, error) {
	ratio, err := normalize.Decimal(c.Markup.TargetProfitRatio)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid markup.target_profit_ratio: %w", err)
	}
	if ratio.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid markup.target_profit_ratio: %s is negative", ratio)
	}
	return ratio, nil
}

// Calculator builds the metrics calculator configured by the markup section.
func (c *Config) Calculator() (*metrics.Calculator, error) {
	ratio, err := c.TargetProfitRatio()
	if err != nil {
		return nil, err
	}
	return metrics.NewCalculator(
		metrics.WithTargetProfitRatio(ratio),
		metrics.WithEventRevenue(c.Markup.IncludeEventRevenue),
	), nil
}

// Catalogs builds a registry with the built-in catalog plus every configured
// catalog file.
func (c *Config) Catalogs() (catalog.Registry, error) {
	registry := catalog.NewRegistryWithDefault(c.Catalog.Default)
	for name, path := range c.Catalog.Files {
		if err := registry.RegisterFile(name, path); err != nil {
			return nil, err
		}
	}
	if _, err := registry.Get(""); err != nil {
		return nil, fmt.Errorf("default catalog: %w", err)
	}
	return registry, nil
}

// InventoryProfiles opens the configured inventory profile file, if any.
func (c *Config) InventoryProfiles() (InventoryRegistry, error) {
	if c.Inventory.File == "" {
		return nil, fmt.Errorf("inventory.file is not configured")
	}
	return NewInventoryRegistry(c.Inventory.File)
}
