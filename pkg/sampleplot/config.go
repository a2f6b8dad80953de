package sampleplot

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/ukaji3/sampleplot/pkg/sampleplot/models"
)

// EnvPrefix prefixes every environment override, e.g. SAMPLEPLOT_EXTRACT_LAYOUT_MIN_ROW.
const EnvPrefix = "SAMPLEPLOT"

// Config is the complete run configuration.
type Config struct {
	Extract   Options           `yaml:"extract" envconfig:"EXTRACT"`
	Chart     models.ChartStyle `yaml:"chart" envconfig:"CHART"`
	OutputDir string            `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	JSONPath  string            `yaml:"json_path" envconfig:"JSON_PATH"`
	Pretty    bool              `yaml:"pretty" envconfig:"PRETTY"`
}

// DefaultConfig returns the configuration used before any file or environment is applied.
func DefaultConfig() Config {
	return Config{
		Extract:   DefaultOptions(),
		Chart:     models.DefaultChartStyle(),
		OutputDir: "output",
	}
}

// LoadConfig builds a Config from defaults, an optional YAML file and the environment,
// in that order of precedence (environment wins), then validates it.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks field constraints and that the layout compiles.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if _, err := c.Extract.Layout.Compile(); err != nil {
		return err
	}
	return nil
}
