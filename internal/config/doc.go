// SPDX-License-Identifier: Apache-2.0

// Package config loads and merges the MiniSamantha client configuration.
//
// Values are collected from three sources in ascending priority: environment
// variables, command-line flags, and an optional JSON file named via the
// CONFIG environment variable or the -c/-config flag. The merged
// [StructuredConfig] is then projected into the [ClientConfig] view consumed
// by the rest of the application, with defaults applied for anything left
// unset.
package config
