// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
)

// Global config file names inside GlobalConfigDir. YAML wins when both exist.
const (
	globalFileName     = "config.yaml"
	globalTOMLFileName = "config.toml"
)

// GlobalConfigDir is $XDG_CONFIG_HOME/breachdash, or ~/.config/breachdash
// when XDG_CONFIG_HOME is unset.
func GlobalConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "breachdash")
}

// GlobalConfigPath is the YAML file `config set --global` writes.
func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), globalFileName)
}

// LoadGlobal reads the user-wide defaults that sit under every project
// config. A missing file yields a zero Config.
func LoadGlobal() (*Config, error) {
	dir := GlobalConfigDir()
	return loadFirst(filepath.Join(dir, globalFileName), filepath.Join(dir, globalTOMLFileName))
}
