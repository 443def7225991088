package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Sources
	PrimaryPath   string `env:"PRIMARY_SOURCE_PATH"   envDefault:"transactions.xml"`
	CompanionPath string `env:"COMPANION_SOURCE_PATH" envDefault:"transactions.csv"`

	// Report
	ReportDumpPath string `env:"REPORT_DUMP_PATH" envDefault:"failed_transactions_report.json"`
	ReportCSVPath  string `env:"REPORT_CSV_PATH"  envDefault:"failedTransactions.csv"`

	// Reconciliation scheduling (server only)
	ReconcileOnStart  bool          `env:"RECONCILE_ON_START" envDefault:"true"`
	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL" envDefault:"0s"`
	ReconcileTimeout  time.Duration `env:"RECONCILE_TIMEOUT"  envDefault:"2m"`

	// Redis report cache (optional - leave empty to disable)
	RedisURL         string        `env:"REDIS_URL"          envDefault:""`
	RedisDialTimeout time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReportCacheTTL   time.Duration `env:"REPORT_CACHE_TTL"   envDefault:"30s"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPRequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT"  envDefault:"15s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Rate limiting (requests per second per client IP; 0 disables)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"10"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// CacheEnabled reports whether a Redis report cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}
