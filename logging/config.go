package logging

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	EnabledSinks     []string
	BufferSize       int
	MinimumSeverity  Severity
	Fields           map[string]any
	JSON             JSONConfig
	Console          ConsoleConfig
	DropWarnInterval time.Duration
}

type JSONConfig struct {
	FilePath      string
	FlushInterval time.Duration
}

type ConsoleConfig struct {
	UseColor bool
}

func DefaultConfig() Config {
	return Config{
		EnabledSinks:     []string{"console"},
		BufferSize:       512,
		MinimumSeverity:  SeverityInfo,
		DropWarnInterval: 5 * time.Second,
		JSON: JSONConfig{
			FlushInterval: 2 * time.Second,
		},
	}
}

// ConfigFromEnv layers LOG_* environment overrides on top of the defaults.
// Recognized: LOG_SINKS (comma separated), LOG_MIN_SEVERITY, LOG_BUFFER,
// LOG_JSON_PATH.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if raw := strings.TrimSpace(os.Getenv("LOG_SINKS")); raw != "" {
		sinks := make([]string, 0, 2)
		for _, name := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				sinks = append(sinks, trimmed)
			}
		}
		if len(sinks) > 0 {
			cfg.EnabledSinks = sinks
		}
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_MIN_SEVERITY"))) {
	case "debug":
		cfg.MinimumSeverity = SeverityDebug
	case "info":
		cfg.MinimumSeverity = SeverityInfo
	case "warn":
		cfg.MinimumSeverity = SeverityWarn
	case "error":
		cfg.MinimumSeverity = SeverityError
	}
	if raw := os.Getenv("LOG_BUFFER"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			cfg.BufferSize = size
		}
	}
	if path := strings.TrimSpace(os.Getenv("LOG_JSON_PATH")); path != "" {
		cfg.JSON.FilePath = path
	}
	return cfg
}

func (c Config) HasSink(name string) bool {
	for _, s := range c.EnabledSinks {
		if s == name {
			return true
		}
	}
	return false
}

func (c Config) CloneFields() map[string]any {
	if len(c.Fields) == 0 {
		return nil
	}
	cloned := make(map[string]any, len(c.Fields))
	for k, v := range c.Fields {
		cloned[k] = v
	}
	return cloned
}
