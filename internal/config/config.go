// Package config loads dataexplorer settings.
//
// Sources are applied in order, each overriding the last: built-in defaults, the
// YAML config file, the project's .dataexplorer/config.yaml, a .env file in the working directory, DATAEXPLORER_* environment
// variables, and finally command-line flags (applied by the cli package).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/rshade/dataexplorer/internal/query"
)

// Defaults.
const (
	DefaultAPIURL     = "http://localhost:8000"
	DefaultAPITimeout = 10 * time.Second
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "json"

	dirName        = ".dataexplorer"
	configFileName = "config.yaml"
	logFileName    = "dataexplorer.log"
	dotEnvFile     = ".env"
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIURL     = "DATAEXPLORER_API_URL"
	EnvAPITimeout = "DATAEXPLORER_API_TIMEOUT"
	EnvLogLevel   = "DATAEXPLORER_LOG_LEVEL"
	EnvPageSize   = "DATAEXPLORER_PAGE_SIZE"
)

// Validation errors.
var (
	ErrInvalidAPIURL  = errors.New("api.url must be an absolute http or https URL")
	ErrInvalidTimeout = errors.New("api.timeout must be positive")
	ErrInvalidLevel   = errors.New("logging.level must be one of trace, debug, info, warn, error")
	ErrInvalidFormat  = errors.New("logging.format must be json or console")
)

// Config is the complete dataexplorer configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig locates the user-records API.
type APIConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// DisplayConfig holds presentation defaults.
type DisplayConfig struct {
	PageSize int `yaml:"page_size"`
}

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:     DefaultAPIURL,
			Timeout: DefaultAPITimeout,
		},
		Display: DisplayConfig{
			PageSize: query.DefaultPageSize,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Dir returns the per-user dataexplorer directory, ~/.dataexplorer.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), dirName)
	}
	return filepath.Join(home, dirName)
}

// DefaultConfigPath returns ~/.dataexplorer/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(Dir(), configFileName)
}

// DefaultLogPath returns ~/.dataexplorer/logs/dataexplorer.log.
func DefaultLogPath() string {
	return filepath.Join(Dir(), "logs", logFileName)
}

// Load builds the configuration from defaults, the config file, .env, and the environment.
// An empty path means DefaultConfigPath, which may be absent, overlaid by the project
// config found by ResolveProjectDir. An explicit path must exist and is used alone.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if err := ShallowMergeYAML(cfg, path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	if !explicit {
		if err := mergeProjectConfig(cfg); err != nil {
			return nil, err
		}
	}

	if err := LoadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeProjectConfig overlays the config of the project containing the working
// directory, if there is one.
func mergeProjectConfig(cfg *Config) error {
	wd, err := os.Getwd()
	if err != nil {
		return nil //nolint:nilerr // No working directory means no project.
	}
	projectDir := ResolveProjectDir(os.LookupEnv, wd)
	if projectDir == "" {
		return nil
	}
	if err = ShallowMergeYAML(cfg, ProjectConfigPath(projectDir)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// LoadDotEnv exports the variables in path without overriding ones already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from DATAEXPLORER_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIURL); ok && strings.TrimSpace(v) != "" {
		c.API.URL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvAPITimeout); ok && strings.TrimSpace(v) != "" {
		d, err := ParseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAPITimeout, err)
		}
		c.API.Timeout = d
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvPageSize); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageSize, err)
		}
		c.Display.PageSize = n
	}
	return nil
}

// ParseTimeout accepts a Go duration ("5s", "1m30s") or a bare number of seconds.
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s, err)
	}
	return d, nil
}

// Validate checks every field. An unsupported page size is reset to the default
// rather than rejected.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: got %q", ErrInvalidAPIURL, c.API.URL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTimeout, c.API.Timeout)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLevel, c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidFormat, c.Logging.Format)
	}

	if !query.ValidPageSize(c.Display.PageSize) {
		c.Display.PageSize = query.DefaultPageSize
	}
	return nil
}
