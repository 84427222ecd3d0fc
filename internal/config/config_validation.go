// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final [ClientConfig] satisfies all invariants
// before it is used at startup. Defaults are applied beforehand, so a
// failure here means an explicitly provided value is unusable.
func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.RefreshInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
