package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// config is the shape of ~/.shellrunrc (spec.md §4's supplemented
// "Configuration loading" component), grounded on dannycoates-cc-allow's
// config.go use of BurntSushi/toml for its own dotfile.
type config struct {
	ExitOnError bool              `toml:"exit_on_error"`
	Trace       bool              `toml:"trace"`
	Env         map[string]string `toml:"env"`
}

// loadConfig reads ~/.shellrunrc if present, returning a zero-value
// config (no overrides) on any error including the file simply not
// existing.
func loadConfig() config {
	home, err := os.UserHomeDir()
	if err != nil {
		return config{}
	}
	var cfg config
	path := filepath.Join(home, ".shellrunrc")
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return config{}
	}
	return cfg
}
