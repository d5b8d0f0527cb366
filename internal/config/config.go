// Package config reads the SMOKE_* environment variables that seed the
// CLI's flag defaults. Flags always win over the environment.
package config

import "github.com/kelseyhightower/envconfig"

// Config holds the environment defaults for the flag surface.
type Config struct {
	// BinDir seeds --bin-dir (SMOKE_BIN_DIR).
	BinDir string `envconfig:"BIN_DIR"`

	// DataDir seeds --data-dir (SMOKE_DATA_DIR).
	DataDir string `envconfig:"DATA_DIR"`

	// DB seeds --db (SMOKE_DB).
	DB string `envconfig:"DB"`
}

// FromEnv reads the SMOKE_* variables. Unset variables leave zero values.
// Process errors are ignored like unset variables: environment defaults
// must never keep the CLI from starting.
func FromEnv() Config {
	var c Config
	_ = envconfig.Process("smoke", &c)
	return c
}
