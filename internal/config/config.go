package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration settings
type Config struct {
	// Output controls where generated CMakeLists.txt files land
	Output OutputConfig `yaml:"output" mapstructure:"output"`

	// CMake controls the generated build-script surface
	CMake CMakeConfig `yaml:"cmake" mapstructure:"cmake"`

	// Report controls how conversion results are presented
	Report ReportConfig `yaml:"report" mapstructure:"report"`
}

type OutputConfig struct {
	// Directory overrides the output root; empty writes next to the
	// solution and project files like the original tool did
	Directory string `yaml:"directory" mapstructure:"directory"`
	DryRun    bool   `yaml:"dry_run" mapstructure:"dry_run"`
}

type CMakeConfig struct {
	MinimumVersion  string `yaml:"minimum_version" mapstructure:"minimum_version"`
	DefaultStandard int    `yaml:"default_standard" mapstructure:"default_standard"`
}

type ReportConfig struct {
	Verbosity string `yaml:"verbosity" mapstructure:"verbosity"` // "quiet", "standard", "" = auto
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		CMake: CMakeConfig{
			MinimumVersion:  "3.16",
			DefaultStandard: 20,
		},
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	// Load .env files first (in order of precedence)
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults
	cfg := Default()
	v.SetDefault("output", cfg.Output)
	v.SetDefault("cmake", cfg.CMake)
	v.SetDefault("report", cfg.Report)

	// Load from environment variables
	v.SetEnvPrefix("SLN2CMAKE")
	v.AutomaticEnv()

	// Try to find config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		// Search for config in standard locations
		v.SetConfigName("config")
		v.AddConfigPath(".sln2cmake")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".sln2cmake"))
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	// Unmarshal into struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Report.Verbosity {
	case "", "quiet", "standard":
	default:
		return fmt.Errorf("invalid report verbosity %q", c.Report.Verbosity)
	}
	if c.CMake.DefaultStandard != 0 {
		switch c.CMake.DefaultStandard {
		case 11, 14, 17, 20, 23:
		default:
			return fmt.Errorf("unsupported default C++ standard %d", c.CMake.DefaultStandard)
		}
	}
	return nil
}

// loadEnvFiles loads .env files, closest directory first.
func loadEnvFiles() {
	candidates := []string{".env.local", ".env"}
	for _, name := range candidates {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}
