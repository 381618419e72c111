package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"metronome/internal/logging"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configPath string
	explicit   bool
	getenv     func(string) string
}

// NewLoader creates a loader that reads the default config file location
func NewLoader() *Loader {
	path, explicit := DefaultConfigPath()
	return &Loader{
		config:     NewConfig(),
		configPath: path,
		explicit:   explicit,
		getenv:     os.Getenv,
	}
}

// WithConfigFile makes the loader read path. A missing file is then an error
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configPath = path
	l.explicit = true
	return l
}

// DefaultConfigPath returns METRONOME_CONFIG when set, otherwise
// ~/.metronome/config.yaml. The bool reports whether the path was set explicitly
func DefaultConfigPath() (string, bool) {
	if path := os.Getenv("METRONOME_CONFIG"); path != "" {
		return path, true
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, DefaultDirName, DefaultConfigFilename), false
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file, when present
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if l.configPath != "" {
		err := l.config.LoadFromFile(l.configPath)
		switch {
		case err == nil:
			logging.Debugf("loaded config file %s\n", l.configPath)
		case errors.Is(err, fs.ErrNotExist) && !l.explicit:
			logging.Debugf("no config file at %s, using defaults\n", l.configPath)
		default:
			return nil, err
		}
	}

	if err := l.config.loadFromLookup(l.getenv); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.Apply(config)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides. Nil fields are not applied
type ConfigOverrides struct {
	DBDir           *string
	DBFilename      *string
	TimeFormat      *string
	DefaultCategory *string
	TableStyle      *string
	Verbose         *bool
}

// Apply copies every set override into config
func (o *ConfigOverrides) Apply(config *Config) {
	if o.DBDir != nil {
		config.Database.Dir = *o.DBDir
	}
	if o.DBFilename != nil {
		config.Database.Filename = *o.DBFilename
	}
	if o.TimeFormat != nil {
		config.Time.DisplayFormat = *o.TimeFormat
	}
	if o.DefaultCategory != nil {
		config.Validation.DefaultCategory = *o.DefaultCategory
	}
	if o.TableStyle != nil {
		config.Display.TableStyle = *o.TableStyle
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
