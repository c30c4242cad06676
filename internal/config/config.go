// Package config defines the portmerge configuration model, its defaults,
// YAML persistence and validation.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"

	"github.com/anstrom/portmerge/internal/errors"
	"github.com/anstrom/portmerge/internal/logging"
)

// Output formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the complete portmerge configuration
type Config struct {
	// Input sources
	Input InputConfig `yaml:"input" json:"input" mapstructure:"input"`

	// Output destinations
	Output OutputConfig `yaml:"output" json:"output" mapstructure:"output"`

	// Risk classification
	Risk RiskConfig `yaml:"risk" json:"risk" mapstructure:"risk"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging" mapstructure:"logging"`

	// Terminal presentation
	Display DisplayConfig `yaml:"display" json:"display" mapstructure:"display"`

	// Metrics export
	Metrics MetricsConfig `yaml:"metrics" json:"metrics" mapstructure:"metrics"`
}

// InputConfig holds the input locations
type InputConfig struct {
	// Directory searched for scan documents
	ScanDir string `yaml:"scan_dir" json:"scan_dir" mapstructure:"scan_dir" validate:"required"`

	// File name pattern of scan documents, matched case-insensitively
	ScanPattern string `yaml:"scan_pattern" json:"scan_pattern" mapstructure:"scan_pattern" validate:"required"`

	// Inventory table (xlsx, csv or tsv); empty disables it
	Table string `yaml:"table" json:"table" mapstructure:"table"`

	// Encodings tried when a text table is not UTF-8
	FallbackEncodings []string `yaml:"fallback_encodings" json:"fallback_encodings" mapstructure:"fallback_encodings" validate:"dive,required"`
}

// OutputConfig holds output settings
type OutputConfig struct {
	// Survey table path
	Path string `yaml:"path" json:"path" mapstructure:"path" validate:"required"`

	// Survey table format
	Format string `yaml:"format" json:"format" mapstructure:"format" validate:"oneof=xlsx csv"`

	// Sheet name of the xlsx output; empty keeps the default
	Sheet string `yaml:"sheet" json:"sheet" mapstructure:"sheet" validate:"max=31"`

	// Merged scan document path; empty disables it
	MergedXML string `yaml:"merged_xml" json:"merged_xml" mapstructure:"merged_xml"`

	// Also print the records to the console
	Print bool `yaml:"print" json:"print" mapstructure:"print"`
}

// RiskConfig extends the built-in dangerous sets
type RiskConfig struct {
	ExtraPorts    []int    `yaml:"extra_ports,omitempty" json:"extra_ports,omitempty" mapstructure:"extra_ports" validate:"dive,min=1,max=65535"`
	ExtraServices []string `yaml:"extra_services,omitempty" json:"extra_services,omitempty" mapstructure:"extra_services" validate:"dive,required"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level" json:"level" mapstructure:"level" validate:"oneof=debug info warn error"`

	// Log format (text, json)
	Format string `yaml:"format" json:"format" mapstructure:"format" validate:"oneof=text json"`

	// Log output (stdout, stderr, file path)
	Output string `yaml:"output" json:"output" mapstructure:"output" validate:"required"`

	// Copy file output to stderr
	Console bool `yaml:"console" json:"console" mapstructure:"console"`

	// Log file rotation
	Rotation RotationConfig `yaml:"rotation" json:"rotation" mapstructure:"rotation"`
}

// RotationConfig holds log rotation settings
type RotationConfig struct {
	// Enable log rotation
	Enabled bool `yaml:"enabled" json:"enabled" mapstructure:"enabled"`

	// Maximum file size in MB
	MaxSizeMB int `yaml:"max_size_mb" json:"max_size_mb" mapstructure:"max_size_mb" validate:"gte=0"`

	// Maximum number of backup files
	MaxBackups int `yaml:"max_backups" json:"max_backups" mapstructure:"max_backups" validate:"gte=0"`

	// Maximum age in days
	MaxAgeDays int `yaml:"max_age_days" json:"max_age_days" mapstructure:"max_age_days" validate:"gte=0"`

	// Compress rotated files
	Compress bool `yaml:"compress" json:"compress" mapstructure:"compress"`
}

// DisplayConfig holds terminal presentation settings
type DisplayConfig struct {
	// Print the startup banner
	Banner bool `yaml:"banner" json:"banner" mapstructure:"banner"`

	// Color mode (auto, always, never)
	Color string `yaml:"color" json:"color" mapstructure:"color" validate:"oneof=auto always never"`

	// Draw the banner with box drawing characters
	Unicode bool `yaml:"unicode" json:"unicode" mapstructure:"unicode"`

	// Spaces left of the banner
	Margin int `yaml:"margin" json:"margin" mapstructure:"margin" validate:"gte=0,lte=40"`

	// Spaces inside the banner box
	Padding int `yaml:"padding" json:"padding" mapstructure:"padding" validate:"gte=0,lte=20"`

	// Show progress bars
	Progress bool `yaml:"progress" json:"progress" mapstructure:"progress"`
}

// MetricsConfig holds metrics export settings
type MetricsConfig struct {
	// Prometheus textfile path; empty disables the export
	Textfile string `yaml:"textfile" json:"textfile" mapstructure:"textfile"`
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Input: InputConfig{
			ScanDir:           ".",
			ScanPattern:       "*.xml",
			Table:             "开放端口.xlsx",
			FallbackEncodings: []string{"gb18030"},
		},
		Output: OutputConfig{
			Path:      "端口调研表.xlsx",
			Format:    FormatXLSX,
			MergedXML: "out.xml",
		},
		Risk: RiskConfig{},
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "text",
			Output:  "merge.log",
			Console: true,
			Rotation: RotationConfig{
				Enabled:    false,
				MaxSizeMB:  100,
				MaxBackups: 5,
				MaxAgeDays: 30,
				Compress:   true,
			},
		},
		Display: DisplayConfig{
			Banner:   true,
			Color:    ColorAuto,
			Unicode:  true,
			Margin:   0,
			Padding:  1,
			Progress: true,
		},
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	// Start with defaults
	config := Default()

	// Return defaults if no config file
	if path == "" {
		return config, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // config path is supplied by the operator
	if err != nil {
		return nil, errors.WrapConfigError(errors.CodeConfiguration, "Failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.WrapConfigError(errors.CodeConfiguration, "Failed to parse config file", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errors.ErrConfigInvalid(fieldPath(fe.Namespace()), fe.Value())
		}
		return errors.WrapConfigError(errors.CodeValidation, "Configuration validation failed", err)
	}

	if _, err := filepath.Match(strings.ToLower(c.Input.ScanPattern), "probe"); err != nil {
		return errors.ErrConfigInvalid("input.scan_pattern", c.Input.ScanPattern)
	}

	for _, name := range c.Input.FallbackEncodings {
		if _, err := htmlindex.Get(name); err != nil {
			return errors.ErrConfigInvalid("input.fallback_encodings", name)
		}
	}

	if c.Input.Table != "" && samePath(c.Input.Table, c.Output.Path) {
		return errors.NewConfigFieldError(errors.CodeValidation,
			"Output would overwrite the input table", "output.path", c.Output.Path)
	}

	return nil
}

// LogConfig converts the logging section to a logging.Config.
func (c *Config) LogConfig() logging.Config {
	return logging.Config{
		Level:     logging.LogLevel(c.Logging.Level),
		Format:    logging.LogFormat(c.Logging.Format),
		Output:    c.Logging.Output,
		AddSource: c.Logging.Level == "debug",
		Console:   c.Logging.Console,
		Rotation: logging.RotationConfig{
			Enabled:    c.Logging.Rotation.Enabled,
			MaxSizeMB:  c.Logging.Rotation.MaxSizeMB,
			MaxBackups: c.Logging.Rotation.MaxBackups,
			MaxAgeDays: c.Logging.Rotation.MaxAgeDays,
			Compress:   c.Logging.Rotation.Compress,
		},
	}
}

// newValidator reports fields by their YAML names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
