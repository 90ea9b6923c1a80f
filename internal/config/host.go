// Package config loads the host configuration. Precedence, lowest first:
// defaults, YAML file, environment, command line.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default minimum window extent.
const (
	DefaultMinWidth  = 420
	DefaultMinHeight = 320
)

// HostConfig holds configuration for the harness host process.
type HostConfig struct {
	AppName    string `yaml:"app_name"`
	LogLevel   string `yaml:"log_level"`
	ConfigFile string `yaml:"-"`

	// DefaultArgs are parsed when the process receives no arguments.
	DefaultArgs []string `yaml:"default_args"`
	MinWidth    uint32   `yaml:"min_width"`
	MinHeight   uint32   `yaml:"min_height"`

	// Plugins lists enabled plugin IDs; "*" enables every registered plugin.
	Plugins []string `yaml:"plugins"`
}

// SetDefaults initializes c with built-in defaults.
func (c *HostConfig) SetDefaults() {
	if c.AppName == "" {
		c.AppName = "harness"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.MinWidth == 0 {
		c.MinWidth = DefaultMinWidth
	}
	if c.MinHeight == 0 {
		c.MinHeight = DefaultMinHeight
	}
	if c.Plugins == nil {
		c.Plugins = []string{"*"}
	}
	if c.ConfigFile == "" {
		c.ConfigFile = SystemLocations().File(c.AppName)
	}
}

// ApplyEnv overlays environment variables onto the current config values.
func (c *HostConfig) ApplyEnv() {
	if v := GetEnv("HARNESS_APP_NAME", ""); v != "" {
		c.AppName = v
	}
	if v := GetEnv("HARNESS_CONFIG", ""); v != "" {
		c.ConfigFile = v
	}
	if v := GetEnv("HARNESS_LOG_LEVEL", ""); v != "" {
		c.LogLevel = v
	}
	if v := GetEnv("HARNESS_ARGS", ""); v != "" {
		c.DefaultArgs = splitComma(v)
	}
	if v := GetEnv("HARNESS_MIN_WIDTH", ""); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			c.MinWidth = uint32(n)
		}
	}
	if v := GetEnv("HARNESS_MIN_HEIGHT", ""); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			c.MinHeight = uint32(n)
		}
	}
	if v := GetEnv("HARNESS_PLUGINS", ""); v != "" {
		c.Plugins = splitComma(v)
	}
}

// LoadFile populates the config from a YAML file.
func (c *HostConfig) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Load applies defaults, the config file when present, then the environment.
// A missing file is not an error.
func Load() (HostConfig, error) {
	var c HostConfig
	c.AppName = GetEnv("HARNESS_APP_NAME", "")
	c.SetDefaults()
	if v := GetEnv("HARNESS_CONFIG", ""); v != "" {
		c.ConfigFile = v
	}
	if err := c.LoadFile(c.ConfigFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c, err
	}
	c.ApplyEnv()
	c.SetDefaults()
	return c, nil
}

// PluginEnabled reports whether id is selected by Plugins.
func (c HostConfig) PluginEnabled(id string) bool {
	for _, p := range c.Plugins {
		if p == "*" || p == id {
			return true
		}
	}
	return false
}

// GetEnv returns the environment value for key or def when unset.
func GetEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func splitComma(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
