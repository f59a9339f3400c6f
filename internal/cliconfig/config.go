package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/statekit/persist/pkg/persist"
)

// Config holds CLI configuration for statectl.
type Config struct {
	// StorePath is the JSON store file operated on.
	StorePath string

	// Namespace scopes clear and key listing. Defaults to the library's
	// default namespace.
	Namespace string

	// Strict enables delimiter-aware namespace matching for clear.
	Strict bool

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		StorePath: defaultStorePath(),
		Namespace: persist.DefaultNamespace,
		LogLevel:  "info",
	}
}

func defaultStorePath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".statectl", "store.json")
	}
	return "store.json"
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.StorePath == "" {
		return fmt.Errorf("store path is required")
	}
	if c.Namespace == "" {
		c.Namespace = persist.DefaultNamespace
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn or error)", c.LogLevel)
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setBoolFromString parses and sets a bool if valid and flag not changed.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	if b, err := strconv.ParseBool(value); err == nil {
		*dst = b
	}
}

// setBool sets a bool from an optional value if present and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}
