package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config represents ~/.sso-profiles/config.yaml.
type Config struct {
	Storage Storage `yaml:"storage"`

	// AutoPopulateUsedProfiles saves every profile seen through intercept.
	AutoPopulateUsedProfiles bool `yaml:"auto_populate_used_profiles"`

	// OpenProfileInDedicatedContainer names a container per profile when a
	// profile is opened.
	OpenProfileInDedicatedContainer bool `yaml:"open_profile_in_dedicated_container"`

	DefaultContainer string `yaml:"default_container,omitempty"`
	Destination      string `yaml:"destination,omitempty"`
	LogFormat        string `yaml:"log_format,omitempty"`
}

// Storage selects the backend holding the profile collection. An empty Path
// means the default file inside the data directory.
type Storage struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Storage:                  Storage{Backend: BackendFile},
		AutoPopulateUsedProfiles: true,
		Destination:              "https://console.aws.amazon.com/",
		LogFormat:                LogFormatText,
	}
}

// Parse parses config.yaml bytes into a Config. Keys missing from data keep
// their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Validate rejects unknown enum values.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (want %s, %s or %s)", c.Storage.Backend, BackendFile, BackendSQLite, BackendMemory)
	}
	switch c.LogFormat {
	case "", LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log format %q (want %s or %s)", c.LogFormat, LogFormatText, LogFormatJSON)
	}
	return nil
}

// Load reads the config file at path. A missing file yields Default().
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

type setter func(c *Config, value string) error

func boolSetter(field func(*Config) *bool) setter {
	return func(c *Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", value)
		}
		*field(c) = b
		return nil
	}
}

func stringSetter(field func(*Config) *string) setter {
	return func(c *Config, value string) error {
		*field(c) = value
		return nil
	}
}

var setters = map[string]setter{
	"storage.backend":                     stringSetter(func(c *Config) *string { return &c.Storage.Backend }),
	"storage.path":                        stringSetter(func(c *Config) *string { return &c.Storage.Path }),
	"auto_populate_used_profiles":         boolSetter(func(c *Config) *bool { return &c.AutoPopulateUsedProfiles }),
	"open_profile_in_dedicated_container": boolSetter(func(c *Config) *bool { return &c.OpenProfileInDedicatedContainer }),
	"default_container":                   stringSetter(func(c *Config) *string { return &c.DefaultContainer }),
	"destination":                         stringSetter(func(c *Config) *string { return &c.Destination }),
	"log_format":                          stringSetter(func(c *Config) *string { return &c.LogFormat }),
}

// Keys lists the keys accepted by Set.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns value to the setting named key and validates the result.
func (c *Config) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	next := *c
	if err := set(&next, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}
