// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// MiniSamantha client. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Adapter holds the outbound transport settings: the server base URL
	// and the request timeout.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the local persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Adapter holds network settings for the outbound transport layer.
type Adapter struct {
	// BaseURL is the MiniSamantha server endpoint
	// (e.g. "https://notes.example.com").
	// Env: ADAPTER_SERVER_URL
	BaseURL string `env:"SERVER_URL"`

	// RequestTimeout is the maximum duration for a single outbound request
	// (e.g. "15s", "1m").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups local persistence settings.
type Storage struct {
	// DB holds the client SQLite settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the client database.
type DB struct {
	// DSN is the SQLite file path used as the client database
	// (e.g. "~/.config/minisamantha/client.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Workers contains background job settings.
type Workers struct {
	// RefreshInterval defines how often the background refresh job
	// re-fetches the authoritative note list.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// GetStructuredConfig builds the merged configuration: environment
// variables first, then command-line flags, then the optional JSON file.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
