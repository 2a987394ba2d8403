// Package config loads runtime configuration for the offline client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .toml are decoded with go-toml; everything else is JSON.
//  3. Command-line flags, which override earlier values.
//
// # File schema
//
// Durations accept strings like "30s" or integer nanoseconds (JSON only):
//
//	base_url              = "https://procosys.example.com/api/"
//	database_driver       = "sqlite"
//	database_dsn          = "mcoffline.db"
//	online_check_interval = "30s"
//	auto_detect_status    = true
//	ping_path             = "Heartbeat/IsAlive"
//	request_timeout       = "30s"
//	user_name             = "field.operator"
//	log_level             = "info"
//
// Environment variables are not read.
package config
