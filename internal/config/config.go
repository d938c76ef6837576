package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/invsearch/internal/inventory"
)

// Config represents the complete invsearch configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Data    DataConfig    `yaml:"data" json:"data"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	Display DisplayConfig `yaml:"display" json:"display"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// DataConfig configures where the inventory lives.
type DataConfig struct {
	// File is the inventory JSON file. Relative paths resolve against the
	// directory the config was loaded for.
	File string `yaml:"file" json:"file"`

	// NoLock disables the session lock file next to the inventory.
	NoLock bool `yaml:"no_lock" json:"no_lock"`
}

// SearchConfig configures fuzzy matching.
type SearchConfig struct {
	// FuzzyLimit is the maximum number of fuzzy matches (default: 5).
	FuzzyLimit int `yaml:"fuzzy_limit" json:"fuzzy_limit"`

	// FuzzyCutoff is the minimum similarity ratio, 0.0-1.0 (default: 0.6).
	FuzzyCutoff float64 `yaml:"fuzzy_cutoff" json:"fuzzy_cutoff"`

	// CacheSize is the number of fuzzy results memoized per session.
	CacheSize int `yaml:"cache_size" json:"cache_size"`
}

// DisplayConfig configures terminal output.
type DisplayConfig struct {
	// Color is "auto" (TTY only), "always" or "never".
	Color string `yaml:"color" json:"color"`

	// DefaultSort orders listings: id, name, category, qty, or empty for file order.
	DefaultSort string `yaml:"default_sort" json:"default_sort"`
}

// LoggingConfig configures the log file.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	projectConfigYAML = ".invsearch.yaml"
	projectConfigYML  = ".invsearch.yml"
)

// NewConfig creates a new Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Data: DataConfig{
			File:   "inventory.json",
			NoLock: false,
		},
		Search: SearchConfig{
			FuzzyLimit:  5,
			FuzzyCutoff: 0.6,
			CacheSize:   128,
		},
		Display: DisplayConfig{
			Color:       ColorAuto,
			DefaultSort: "",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "", // Empty uses ~/.invsearch/logs/invsearch.log
		},
	}
}

// GetUserConfigPath returns the path to the user/global configuration file.
// It follows XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/invsearch/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/invsearch/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "invsearch", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "invsearch", "config.yaml")
	}
	return filepath.Join(home, ".config", "invsearch", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// LoadUserConfig loads the user configuration file.
// Returns nil config and nil error if the file doesn't exist.
func LoadUserConfig() (*Config, error) {
	configPath := GetUserConfigPath()
	if !fileExists(configPath) {
		return nil, nil
	}

	var parsed Config
	if err := parsed.readYAML(configPath); err != nil {
		return nil, fmt.Errorf("failed to load user config from %s: %w", configPath, err)
	}
	return &parsed, nil
}

// Load loads configuration for the given directory.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User/global config (~/.config/invsearch/config.yaml)
//  3. Project config (.invsearch.yaml in dir)
//  4. Environment variables (INVSEARCH_*)
//
// A relative data file is resolved against dir.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	// Each file is decoded over the layers below it, so only the keys it
	// sets change. Explicit zero values such as fuzzy_cutoff: 0 or
	// no_lock: false take effect.
	if path := GetUserConfigPath(); fileExists(path) {
		if err := cfg.readYAML(path); err != nil {
			return nil, fmt.Errorf("failed to load user config from %s: %w", path, err)
		}
	}

	if path := ProjectConfigPath(dir); path != "" {
		if err := cfg.readYAML(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if !filepath.IsAbs(cfg.Data.File) {
		cfg.Data.File = filepath.Join(dir, cfg.Data.File)
	}

	return cfg, nil
}

// ProjectConfigPath returns the project config file in dir, or "" if none.
// .invsearch.yaml takes precedence over .invsearch.yml.
func ProjectConfigPath(dir string) string {
	for _, name := range []string{projectConfigYAML, projectConfigYML} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// readYAML decodes the YAML file at path into c. Fields not present in
// the file keep their current values.
func (c *Config) readYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies INVSEARCH_* environment variable overrides.
// Unparseable values are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("INVSEARCH_DATA_FILE"); v != "" {
		c.Data.File = v
	}
	if v := os.Getenv("INVSEARCH_FUZZY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Search.FuzzyLimit = n
		}
	}
	if v := os.Getenv("INVSEARCH_FUZZY_CUTOFF"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && f >= 0 && f <= 1 {
			c.Search.FuzzyCutoff = f
		}
	}
	if v := os.Getenv("INVSEARCH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.Display.Color = ColorNever
	}
	if v := os.Getenv("INVSEARCH_NO_COLOR"); v == "1" || strings.EqualFold(v, "true") {
		c.Display.Color = ColorNever
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Data.File == "" {
		return fmt.Errorf("data.file must not be empty")
	}
	if c.Search.FuzzyLimit <= 0 {
		return fmt.Errorf("search.fuzzy_limit must be positive, got %d", c.Search.FuzzyLimit)
	}
	if math.IsNaN(c.Search.FuzzyCutoff) || c.Search.FuzzyCutoff < 0 || c.Search.FuzzyCutoff > 1 {
		return fmt.Errorf("search.fuzzy_cutoff must be between 0 and 1, got %f", c.Search.FuzzyCutoff)
	}
	if c.Search.CacheSize < 0 {
		return fmt.Errorf("search.cache_size must be non-negative, got %d", c.Search.CacheSize)
	}

	validColors := map[string]bool{ColorAuto: true, ColorAlways: true, ColorNever: true}
	if !validColors[strings.ToLower(c.Display.Color)] {
		return fmt.Errorf("display.color must be 'auto', 'always', or 'never', got %s", c.Display.Color)
	}
	if _, err := inventory.ParseSortKey(c.Display.DefaultSort); err != nil {
		return fmt.Errorf("display.default_sort: %w", err)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeNewDefaults fills fields an older config file left unset and
// returns the names of the fields it added.
func (c *Config) MergeNewDefaults() []string {
	defaults := NewConfig()
	var added []string

	if c.Version == 0 {
		c.Version = defaults.Version
		added = append(added, "version")
	}
	if c.Search.FuzzyLimit == 0 {
		c.Search.FuzzyLimit = defaults.Search.FuzzyLimit
		added = append(added, "search.fuzzy_limit")
	}
	if c.Search.FuzzyCutoff == 0 {
		c.Search.FuzzyCutoff = defaults.Search.FuzzyCutoff
		added = append(added, "search.fuzzy_cutoff")
	}
	if c.Search.CacheSize == 0 {
		c.Search.CacheSize = defaults.Search.CacheSize
		added = append(added, "search.cache_size")
	}
	if c.Display.Color == "" {
		c.Display.Color = defaults.Display.Color
		added = append(added, "display.color")
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
		added = append(added, "logging.level")
	}

	return added
}

// fileExists checks if a regular file exists.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
