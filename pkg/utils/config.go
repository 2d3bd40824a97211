package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/oxygene76/cmdemo/internal/logging"
	"github.com/oxygene76/cmdemo/pkg/demo"
	"github.com/oxygene76/cmdemo/pkg/linalg"
)

// EnvPrefix is the prefix of environment overrides, e.g. CMDEMO_OUTPUT_FORMAT
const EnvPrefix = "CMDEMO"

// Config represents the demo configuration
type Config struct {
	Demo   DemoConfig   `yaml:"demo" mapstructure:"demo"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DemoConfig contains the state vector and the two operators
type DemoConfig struct {
	State     []float64   `yaml:"state" mapstructure:"state"`
	OperatorA [][]float64 `yaml:"operator_a" mapstructure:"operator_a"`
	OperatorB [][]float64 `yaml:"operator_b" mapstructure:"operator_b"`
	Epsilon   float64     `yaml:"epsilon" mapstructure:"epsilon"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
}

// LogConfig controls diagnostics on stderr
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns a configuration reproducing the literal demonstration
func DefaultConfig() *Config {
	return &Config{
		Demo: DemoConfig{
			State:     demo.DefaultState(),
			OperatorA: demo.OperatorARows(),
			OperatorB: demo.OperatorBRows(),
			Epsilon:   demo.Epsilon,
		},
		Output: OutputConfig{
			Format: demo.FormatText,
		},
		Log: LogConfig{
			Level: logging.DefaultLevel,
		},
	}
}

// SetDefaults registers the default configuration with v
func SetDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("demo.state", def.Demo.State)
	v.SetDefault("demo.operator_a", def.Demo.OperatorA)
	v.SetDefault("demo.operator_b", def.Demo.OperatorB)
	v.SetDefault("demo.epsilon", def.Demo.Epsilon)
	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("log.level", def.Log.Level)
}

// LoadConfig loads configuration from the file configured on v (if any),
// environment variables and defaults. A missing config file is not an error.
func LoadConfig(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// SaveConfig writes the configuration as YAML to path
func SaveConfig(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default config file location
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".cmdemo", "config.yaml"), nil
}

// Params converts the configuration into demonstration inputs
func (c *Config) Params() (demo.Params, error) {
	a, err := linalg.NewMatrix(c.Demo.OperatorA)
	if err != nil {
		return demo.Params{}, errors.Wrapf(demo.ErrInvalidConfig, "operator_a: %v", err)
	}
	b, err := linalg.NewMatrix(c.Demo.OperatorB)
	if err != nil {
		return demo.Params{}, errors.Wrapf(demo.ErrInvalidConfig, "operator_b: %v", err)
	}

	return demo.Params{
		State:   linalg.NewVector(c.Demo.State...),
		A:       a,
		B:       b,
		Epsilon: c.Demo.Epsilon,
	}, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if len(config.Demo.State) == 0 {
		return errors.Wrap(demo.ErrInvalidConfig, "state cannot be empty")
	}

	if !(config.Demo.Epsilon > 0) {
		return errors.Wrapf(demo.ErrInvalidConfig, "epsilon must be positive, got %g", config.Demo.Epsilon)
	}

	if _, err := config.Params(); err != nil {
		return err
	}

	switch config.Output.Format {
	case demo.FormatText, demo.FormatJSON, demo.FormatYAML:
	default:
		return errors.Wrapf(demo.ErrInvalidConfig, "invalid output format: %s", config.Output.Format)
	}

	if _, err := logging.ParseLevel(config.Log.Level); err != nil {
		return errors.Wrap(demo.ErrInvalidConfig, err.Error())
	}

	return nil
}
