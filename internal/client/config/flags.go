package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/mcoffline/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string    API base URL
//	-d string    database DSN (file path for sqlite)
//	-driver      database driver: sqlite or pgx
//	-i int       online check interval (seconds)
//	-t int       request timeout (seconds)
//	-u string    user name recorded on offline sign/verify
//	-l string    log level
//	-auto        detect online status automatically
//
// Only these flags are taken from os.Args (see flagx.FilterArgs).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-d", "-driver", "-i", "-t", "-u", "-l"},
		"-auto")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "API base URL")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.DatabaseDriver, "driver", cfg.DatabaseDriver, "database driver (sqlite|pgx)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.UserName, "u", cfg.UserName, "user name for offline sign/verify")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.AutoDetectStatus, "auto", cfg.AutoDetectStatus, "detect online status automatically")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
