package config

// MetricsConfig holds metrics export configuration
type MetricsConfig struct {
	// Prometheus textfile written after each run; empty disables export
	Textfile string `mapstructure:"textfile"`
}
