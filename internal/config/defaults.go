package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/napolitain/isle-solver/internal/models"
)

// SetDefaults sets default values for all unset configuration fields
func SetDefaults(cfg *Config) {
	// Solver defaults
	if cfg.Solver.Workshops == 0 {
		cfg.Solver.Workshops = 4
	}
	if cfg.Solver.ProgressInterval == 0 {
		cfg.Solver.ProgressInterval = 250 * time.Millisecond
	}

	// Data defaults
	if cfg.Data.StockFile == "" {
		cfg.Data.StockFile = "Isleventory.txt"
	}
	if cfg.Data.StockDivisor == 0 {
		cfg.Data.StockDivisor = models.DefaultStockDivisor
	}

	// Cache defaults
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 10 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// registerDefaults makes every key known to viper so environment variables
// are picked up by Unmarshal even without a config file.
func registerDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("solver.workshops", d.Solver.Workshops)
	v.SetDefault("solver.workers", d.Solver.Workers)
	v.SetDefault("solver.strict_hash", d.Solver.StrictHash)
	v.SetDefault("solver.progress_interval", d.Solver.ProgressInterval)
	v.SetDefault("data.dir", d.Data.Dir)
	v.SetDefault("data.stock_file", d.Data.StockFile)
	v.SetDefault("data.stock_divisor", d.Data.StockDivisor)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("metrics.textfile", d.Metrics.Textfile)
}
