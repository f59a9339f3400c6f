package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (STATECTL_*). It respects flags that have been explicitly set (changed
// map): precedence is flags > env > file > defaults.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("store", os.Getenv("STATECTL_STORE"), &cfg.StorePath)
	s.setString("namespace", os.Getenv("STATECTL_NAMESPACE"), &cfg.Namespace)
	s.setString("log-level", os.Getenv("STATECTL_LOG_LEVEL"), &cfg.LogLevel)
	s.setBoolFromString("strict", os.Getenv("STATECTL_STRICT"), &cfg.Strict)
}
