package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/mcoffline/internal/flagx"
	"github.com/dmitrijs2005/mcoffline/internal/timex"
	"github.com/pelletier/go-toml/v2"
)

// fileConfig is the on-disk shape shared by the JSON and TOML loaders.
// Zero values mean "not set" and leave the current Config value untouched.
type fileConfig struct {
	BaseURL             string         `json:"base_url" toml:"base_url"`
	DatabaseDriver      string         `json:"database_driver" toml:"database_driver"`
	DatabaseDSN         string         `json:"database_dsn" toml:"database_dsn"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" toml:"online_check_interval"`
	AutoDetectStatus    *bool          `json:"auto_detect_status" toml:"auto_detect_status"`
	PingPath            string         `json:"ping_path" toml:"ping_path"`
	RequestTimeout      timex.Duration `json:"request_timeout" toml:"request_timeout"`
	UserName            string         `json:"user_name" toml:"user_name"`
	LogLevel            string         `json:"log_level" toml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config. The format is
// picked by extension: .toml uses go-toml, anything else is JSON.
// Read or decode errors panic, like flag errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc, err := decodeFile(path, data)
	if err != nil {
		panic(err)
	}
	fc.apply(cfg)
}

func decodeFile(path string, data []byte) (*fileConfig, error) {
	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("decode toml config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("decode json config %s: %w", path, err)
		}
	}
	return &fc, nil
}

func (fc *fileConfig) apply(cfg *Config) {
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.DatabaseDriver != "" {
		cfg.DatabaseDriver = fc.DatabaseDriver
	}
	if fc.DatabaseDSN != "" {
		cfg.DatabaseDSN = fc.DatabaseDSN
	}
	if fc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.AutoDetectStatus != nil {
		cfg.AutoDetectStatus = *fc.AutoDetectStatus
	}
	if fc.PingPath != "" {
		cfg.PingPath = fc.PingPath
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.UserName != "" {
		cfg.UserName = fc.UserName
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
