// Package config loads checklist settings.
//
// Precedence (highest to lowest): explicitly set flags > CHECKLIST_* env
// vars > checklist.yaml > defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "CHECKLIST_"

// Backend names accepted by store.backend.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds process-level settings for every subcommand.
type Config struct {
	Server ServerConfig `koanf:"server"`
	Store  StoreConfig  `koanf:"store"`
	Client ClientConfig `koanf:"client"`
	Sync   SyncConfig   `koanf:"sync"`
	Log    LogConfig    `koanf:"log"`
	UI     UIConfig     `koanf:"ui"`
}

type ServerConfig struct {
	Addr    string `koanf:"addr"`
	MaxBody int64  `koanf:"max_body"`
}

type StoreConfig struct {
	Backend string `koanf:"backend"`
	Path    string `koanf:"path"`
}

type ClientConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

type SyncConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

type UIConfig struct {
	Theme string `koanf:"theme"`
}

// Defaults mirrors the built-in values as koanf keys.
func Defaults() map[string]any {
	return map[string]any{
		"server.addr":     ":3000",
		"server.max_body": int64(8 << 20),
		"store.backend":   BackendJSON,
		"store.path":      "data/tables.json",
		"client.url":      "http://localhost:3000",
		"client.timeout":  "5s",
		"sync.debounce":   "500ms",
		"log.level":       "info",
		"log.format":      "text",
		"log.file":        "",
		"ui.theme":        "classic",
	}
}

// flagKeys bridges short CLI flag names to config keys.
var flagKeys = map[string]string{
	"addr":       "server.addr",
	"max-body":   "server.max_body",
	"backend":    "store.backend",
	"data":       "store.path",
	"url":        "client.url",
	"timeout":    "client.timeout",
	"debounce":   "sync.debounce",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
	"theme":      "ui.theme",
}

// findConfigFile returns the explicit path, or checklist.yaml / .yml in the
// working directory if present.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"checklist.yaml", "checklist.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load resolves configuration. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if used := findConfigFile(cfgFile); used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// CHECKLIST_SERVER_MAX_BODY -> server.max_body
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.Replace(key, "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("invalid store.backend %q (want %s|%s)", c.Store.Backend, BackendJSON, BackendSQLite)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	if c.Sync.Debounce <= 0 {
		return fmt.Errorf("sync.debounce must be positive, got %s", c.Sync.Debounce)
	}
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("client.timeout must be positive, got %s", c.Client.Timeout)
	}
	if c.Server.MaxBody <= 0 {
		return fmt.Errorf("server.max_body must be positive, got %d", c.Server.MaxBody)
	}
	return nil
}

// ListenAddr returns a listen address, ensuring a bare port gets a ":" prefix.
func (s ServerConfig) ListenAddr() string {
	if strings.Contains(s.Addr, ":") {
		return s.Addr
	}
	return ":" + s.Addr
}
