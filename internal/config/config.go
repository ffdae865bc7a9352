package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName   = "any-notify"
	envPrefix = "ANY_NOTIFY_"
)

// userConfigNames are looked up under the XDG config directories, first match wins.
var userConfigNames = []string{"config.toml", "config.json"}

// Configuration represents the resolved settings for one notification
type Configuration struct {
	Title     string `koanf:"title"`
	Urgency   string `koanf:"urgency" validate:"oneof=low normal critical"`
	Icon      string `koanf:"icon"`
	TimeoutMS *int   `koanf:"timeout_ms" validate:"omitempty,min=0"`
	Backend   string `koanf:"backend" validate:"oneof=auto native-daemon message-bus compat-popup text-fallback"`
	Verbose   bool   `koanf:"verbose"`
}

// Load resolves configuration from every source.
// Priority: overrides > Environment variables > configPath > User config > Defaults
//
// overrides holds values the user set explicitly on the command line, keyed
// like the config file.
func Load(configPath string, overrides map[string]interface{}) (*Configuration, error) {
	k := koanf.New(".")

	// Apply defaults first
	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply defaults: %w", err)
		}
	}

	// Load user config if it exists
	if userPath := UserConfigPath(); userPath != "" {
		if err := loadFile(k, userPath); err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
	}

	// An explicitly named config file must exist
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadFile(k, configPath); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", key, err)
		}
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.Icon = expandHomePath(cfg.Icon)

	return &cfg, nil
}

// UserConfigPath returns the first existing user config file, or "".
func UserConfigPath() string {
	for _, name := range userConfigNames {
		path, err := xdg.SearchConfigFile(filepath.Join(appName, name))
		if err == nil {
			return path
		}
	}
	return ""
}

// loadFile merges path into k, picking the parser from the file extension.
func loadFile(k *koanf.Koanf, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return k.Load(file.Provider(path), toml.Parser())
	case ".json":
		return k.Load(file.Provider(path), json.Parser())
	default:
		return errors.New("unsupported config format " + filepath.Ext(path) + " (want .toml or .json)")
	}
}

// envTransform converts environment variable names to config keys
// Example: ANY_NOTIFY_TIMEOUT_MS -> timeout_ms
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
