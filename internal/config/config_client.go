package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default values applied when neither env, flags, nor the JSON file provide
// a setting.
const (
	defaultBaseURL         = "http://localhost:8080"
	defaultRequestTimeout  = 15 * time.Second
	defaultRefreshInterval = 5 * time.Minute
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// BaseURL is the MiniSamantha server endpoint.
	BaseURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path used as the client database.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// RefreshInterval defines how often the background refresh job runs.
	RefreshInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport address and timeout.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds the client config view from the merged structured
// configuration, filling in defaults for anything left unset and validating
// the result.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{
			RefreshInterval: cfg.Workers.RefreshInterval,
		},
	}
	clientCfg.applyDefaults()

	if err = clientCfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	return clientCfg, nil
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.BaseURL == "" {
		cfg.Adapter.BaseURL = defaultBaseURL
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Workers.RefreshInterval <= 0 {
		cfg.Workers.RefreshInterval = defaultRefreshInterval
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = defaultDBPath()
	}
}

// defaultDBPath places the client database under the user config directory,
// falling back to the working directory when the platform does not expose
// one.
func defaultDBPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "minisamantha.db"
	}
	return filepath.Join(base, "minisamantha", "client.db")
}
