package config

import "time"

// Config holds runtime settings for the offline client.
type Config struct {
	// BaseURL is the API root stripped from endpoints to form cache keys.
	BaseURL string

	// DatabaseDriver selects the store: "sqlite" (on device) or "pgx".
	DatabaseDriver string
	// DatabaseDSN is a file path for sqlite or a connection string for pgx.
	DatabaseDSN string

	// OnlineCheckInterval is how often the watcher pings the server when
	// AutoDetectStatus is on.
	OnlineCheckInterval time.Duration
	AutoDetectStatus    bool
	PingPath            string

	// RequestTimeout bounds every online HTTP call.
	RequestTimeout time.Duration

	// UserName is recorded as signer/verifier on offline sign and verify.
	UserName string

	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://procosys.example.com/api/"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "mcoffline.db"
	c.OnlineCheckInterval = 30 * time.Second
	c.AutoDetectStatus = false
	c.PingPath = "Heartbeat/IsAlive"
	c.RequestTimeout = 30 * time.Second
	c.UserName = ""
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
