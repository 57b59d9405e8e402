package config

import "time"

// SolverConfig tunes the preset enumeration and strategy search.
type SolverConfig struct {
	// Number of workshops to plan for (1-4)
	Workshops int `mapstructure:"workshops" validate:"min=1,max=4"`

	// Concurrent search branches; 0 uses GOMAXPROCS
	Workers int `mapstructure:"workers" validate:"min=0"`

	// Fail on structural hash collisions instead of comparing vectors
	StrictHash bool `mapstructure:"strict_hash"`

	// Minimum delay between progress updates
	ProgressInterval time.Duration `mapstructure:"progress_interval" validate:"min=0"`
}

// DataConfig locates the input files.
type DataConfig struct {
	// Directory holding recipes.json and gathering.json; empty uses the
	// built-in tables
	Dir string `mapstructure:"dir"`

	// Isleventory stock file
	StockFile string `mapstructure:"stock_file" validate:"required"`

	// Stock counts are divided by this before solving
	StockDivisor int `mapstructure:"stock_divisor" validate:"min=1"`
}

// CacheConfig controls the in-process preset cache.
type CacheConfig struct {
	// Lifetime of an enumerated preset array
	TTL time.Duration `mapstructure:"ttl" validate:"min=0"`
}
