package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-s/-server server base URL
//	-d database file path
//	-c/-config json file path with configs
//	-request-timeout outbound request timeout (e.g., "15s", "1m")
//	-refresh-interval background refresh interval (e.g., "5m")
func ParseFlags() *StructuredConfig {
	var serverURL string
	var databaseDSN string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var refreshInterval time.Duration

	flag.StringVar(&serverURL, "s", "", "Server base URL")
	flag.StringVar(&serverURL, "server", "", "Server base URL (alias)")
	flag.StringVar(&databaseDSN, "d", "", "Client database file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s, 1m)")
	flag.DurationVar(&refreshInterval, "refresh-interval", 0, "Background refresh interval (e.g., 5m)")

	flag.Parse()

	return &StructuredConfig{
		Adapter: Adapter{
			BaseURL:        serverURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Workers: Workers{
			RefreshInterval: refreshInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
