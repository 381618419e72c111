package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"metronome/internal/domain"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDirName           = ".metronome"
	DefaultDBFilename        = "tasks.db"
	DefaultConfigFilename    = "config.yaml"
	DefaultDisplayFormat     = "Mon Jan _2 15:04:05 2006"
	DefaultTaskNameMinLength = 1
	DefaultTaskNameMaxLength = 255
	DefaultCategoryMaxLength = 64
	DefaultTableStyle        = "rounded"
)

// TableStyles lists the accepted Display.TableStyle values
var TableStyles = []string{"rounded", "normal", "thick", "double", "ascii", "markdown", "hidden"}

// Config holds all configuration options for metronome
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Time        TimeConfig        `yaml:"time"`
	Validation  ValidationConfig  `yaml:"validation"`
	Display     DisplayConfig     `yaml:"display"`
	Application ApplicationConfig `yaml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string `yaml:"dir" env:"METRONOME_DB_DIR"`
	Filename       string `yaml:"filename" env:"METRONOME_DB_FILENAME"`
	DirPermissions uint32 `yaml:"dir_permissions" env:"METRONOME_DB_DIR_PERMISSIONS"`
}

// TimeConfig holds time formatting configuration
type TimeConfig struct {
	DisplayFormat string `yaml:"display_format" env:"METRONOME_TIME_DISPLAY_FORMAT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskNameMinLength int    `yaml:"task_name_min_length" env:"METRONOME_VALIDATION_TASK_NAME_MIN"`
	TaskNameMaxLength int    `yaml:"task_name_max_length" env:"METRONOME_VALIDATION_TASK_NAME_MAX"`
	CategoryMaxLength int    `yaml:"category_max_length" env:"METRONOME_VALIDATION_CATEGORY_MAX"`
	DefaultCategory   string `yaml:"default_category" env:"METRONOME_DEFAULT_CATEGORY"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TableStyle    string `yaml:"table_style" env:"METRONOME_DISPLAY_TABLE_STYLE"`
	RelativeTimes bool   `yaml:"relative_times" env:"METRONOME_DISPLAY_RELATIVE"`
}

// ApplicationConfig holds application-level configuration. A zero Timeout
// leaves commands unbounded
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"METRONOME_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"METRONOME_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Dir:            filepath.Join(homeDir, DefaultDirName),
			Filename:       DefaultDBFilename,
			DirPermissions: 0755,
		},
		Time: TimeConfig{
			DisplayFormat: DefaultDisplayFormat,
		},
		Validation: ValidationConfig{
			TaskNameMinLength: DefaultTaskNameMinLength,
			TaskNameMaxLength: DefaultTaskNameMaxLength,
			CategoryMaxLength: DefaultCategoryMaxLength,
			DefaultCategory:   domain.DefaultCategory,
		},
		Display: DisplayConfig{
			TableStyle: DefaultTableStyle,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromFile overlays the values present in a YAML file. Keys missing from
// the file keep their current values
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return &ConfigError{Field: "file", Message: fmt.Sprintf("cannot parse %s: %v", path, err)}
	}
	return nil
}

// WriteToFile stores the configuration as YAML, creating parent directories
func (c *Config) WriteToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), os.FileMode(c.Database.DirPermissions)); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFromEnvironment loads configuration from environment variables.
// Values that fail to parse are ignored
func (c *Config) LoadFromEnvironment() error {
	return c.loadFromLookup(os.Getenv)
}

func (c *Config) loadFromLookup(getenv func(string) string) error {
	// Database configuration
	if dir := getenv("METRONOME_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := getenv("METRONOME_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if perms := getenv("METRONOME_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Time configuration
	if format := getenv("METRONOME_TIME_DISPLAY_FORMAT"); format != "" {
		c.Time.DisplayFormat = format
	}

	// Validation configuration
	if minLen := getenv("METRONOME_VALIDATION_TASK_NAME_MIN"); minLen != "" {
		c.Validation.TaskNameMinLength = ParseIntWithFallback(minLen, c.Validation.TaskNameMinLength)
	}
	if maxLen := getenv("METRONOME_VALIDATION_TASK_NAME_MAX"); maxLen != "" {
		c.Validation.TaskNameMaxLength = ParseIntWithFallback(maxLen, c.Validation.TaskNameMaxLength)
	}
	if maxLen := getenv("METRONOME_VALIDATION_CATEGORY_MAX"); maxLen != "" {
		c.Validation.CategoryMaxLength = ParseIntWithFallback(maxLen, c.Validation.CategoryMaxLength)
	}
	if category := getenv("METRONOME_DEFAULT_CATEGORY"); category != "" {
		c.Validation.DefaultCategory = category
	}

	// Display configuration
	if style := getenv("METRONOME_DISPLAY_TABLE_STYLE"); style != "" {
		c.Display.TableStyle = style
	}
	if relative := getenv("METRONOME_DISPLAY_RELATIVE"); relative != "" {
		c.Display.RelativeTimes = ParseBoolWithFallback(relative, c.Display.RelativeTimes)
	}

	// Application configuration
	if timeout := getenv("METRONOME_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := getenv("METRONOME_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}

	if c.Time.DisplayFormat == "" {
		return &ConfigError{Field: "time.display_format", Message: "display format cannot be empty"}
	}

	if c.Validation.TaskNameMinLength < 1 {
		return &ConfigError{Field: "validation.task_name_min_length", Message: "task name minimum length must be at least 1"}
	}
	if c.Validation.TaskNameMaxLength < c.Validation.TaskNameMinLength {
		return &ConfigError{Field: "validation.task_name_max_length", Message: "task name maximum length must be greater than minimum length"}
	}
	if c.Validation.CategoryMaxLength < 1 {
		return &ConfigError{Field: "validation.category_max_length", Message: "category maximum length must be at least 1"}
	}
	if c.Validation.DefaultCategory == "" {
		return &ConfigError{Field: "validation.default_category", Message: "default category cannot be empty"}
	}
	if len(c.Validation.DefaultCategory) > c.Validation.CategoryMaxLength {
		return &ConfigError{Field: "validation.default_category", Message: "default category exceeds category maximum length"}
	}

	if !isTableStyle(c.Display.TableStyle) {
		return &ConfigError{Field: "display.table_style", Message: fmt.Sprintf("unknown table style %q", c.Display.TableStyle)}
	}

	if c.Application.Timeout < 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout cannot be negative"}
	}

	return nil
}

func isTableStyle(style string) bool {
	for _, s := range TableStyles {
		if s == style {
			return true
		}
	}
	return false
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
