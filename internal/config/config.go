package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "attendcli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Engine  EngineConfig  `yaml:"engine" toml:"engine" envconfig:"ENGINE"`
	Batch   BatchConfig   `yaml:"batch" toml:"batch" envconfig:"BATCH"`
	Logging LoggingConfig `yaml:"logging" toml:"logging" envconfig:"LOGGING"`
	Output  OutputConfig  `yaml:"output" toml:"output" envconfig:"OUTPUT"`
	Tracing TracingConfig `yaml:"tracing" toml:"tracing" envconfig:"TRACING"`
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics" envconfig:"METRICS"`
}

// EngineConfig contains the tunables of the reconciliation and analytics engine
type EngineConfig struct {
	OutlierFactor float64 `yaml:"outlier_factor" toml:"outlier_factor" envconfig:"OUTLIER_FACTOR" validate:"gt=0"`
	Clusters      int     `yaml:"clusters" toml:"clusters" envconfig:"CLUSTERS" validate:"min=1"`
	Seed          uint64  `yaml:"seed" toml:"seed" envconfig:"SEED"`
	Restarts      int     `yaml:"restarts" toml:"restarts" envconfig:"RESTARTS" validate:"min=1"`
	MaxIterations int     `yaml:"max_iterations" toml:"max_iterations" envconfig:"MAX_ITERATIONS" validate:"min=1"`
	Tolerance     float64 `yaml:"tolerance" toml:"tolerance" envconfig:"TOLERANCE" validate:"gte=0"`
	Location      string  `yaml:"location" toml:"location" envconfig:"LOCATION" validate:"required,timezone"`

	// Calendar days off besides weekends, as YYYY-MM-DD
	Holidays      []string `yaml:"holidays" toml:"holidays" envconfig:"HOLIDAYS" validate:"dive,datetime=2006-01-02"`
	NonWorkedDays []string `yaml:"non_worked_days" toml:"non_worked_days" envconfig:"NON_WORKED_DAYS" validate:"dive,datetime=2006-01-02"`
}

// BatchConfig contains settings for multi-dataset runs
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" toml:"concurrency" envconfig:"CONCURRENCY" validate:"min=1"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" toml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" toml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" toml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" toml:"file_path" envconfig:"FILE_PATH"`
}

// OutputConfig contains report export configuration
type OutputConfig struct {
	Dir       string   `yaml:"dir" toml:"dir" envconfig:"DIR" validate:"required"`
	Formats   []string `yaml:"formats" toml:"formats" envconfig:"FORMATS" validate:"min=1,dive,oneof=json csv xlsx"`
	BOMPrefix bool     `yaml:"bom_prefix" toml:"bom_prefix" envconfig:"BOM_PREFIX"`
}

// TracingConfig contains OpenTelemetry tracing configuration
type TracingConfig struct {
	Exporter    string  `yaml:"exporter" toml:"exporter" envconfig:"EXPORTER" validate:"oneof=stdout none"`
	FilePath    string  `yaml:"file_path" toml:"file_path" envconfig:"FILE_PATH"`
	SampleRatio float64 `yaml:"sample_ratio" toml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

// MetricsConfig contains the Prometheus textfile settings
type MetricsConfig struct {
	Textfile string `yaml:"textfile" toml:"textfile" envconfig:"TEXTFILE"`
}

// Load builds the configuration from defaults, an optional YAML or TOML file
// and ATTEND_* environment variables, in increasing order of precedence
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("file", configFile)
		}
	}

	// Fields without a matching variable keep their current value
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays a YAML or TOML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return fmt.Errorf("unsupported config file extension: %s", filepath.Ext(filePath))
	}
}

// Validate checks struct constraints and normalizes logging settings
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}

	// Always JSON
	c.Logging.Format = "json"
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	return nil
}

// TimeLocation resolves the location used to bucket punches into days
func (e EngineConfig) TimeLocation() (*time.Location, error) {
	return time.LoadLocation(e.Location)
}

// getConfigFilePath returns the first config file found in common locations
func getConfigFilePath() string {
	locations := []string{
		"attendance.yaml",
		"attendance.toml",
		"configs/attendance.yaml",
		"configs/attendance.toml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			OutlierFactor: DefaultOutlierFactor,
			Clusters:      DefaultClusters,
			Seed:          DefaultSeed,
			Restarts:      DefaultRestarts,
			MaxIterations: DefaultMaxIterations,
			Tolerance:     DefaultTolerance,
			Location:      "UTC",
		},
		Batch: BatchConfig{
			Concurrency: DefaultBatchConcurrency,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Output: OutputConfig{
			Dir:       DefaultReportsDir,
			Formats:   []string{"json", "csv", "xlsx"},
			BOMPrefix: true,
		},
		Tracing: TracingConfig{
			Exporter:    "none",
			SampleRatio: 1.0,
		},
	}
}
