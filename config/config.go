// Package config loads qrgen settings from defaults, an optional YAML file,
// a .env file and QRGEN_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/prasetyowira/qrgen/constant"
)

type Config struct {
	Port            int    `yaml:"port"`
	LogLevel        string `yaml:"log_level"`
	Environment     string `yaml:"environment"`
	SessionCapacity int    `yaml:"session_capacity"`
	OutputDir       string `yaml:"output_dir"`
	Clipboard       bool   `yaml:"clipboard"`
}

func defaults() Config {
	return Config{
		Port:            8080,
		LogLevel:        "debug",
		Environment:     constant.EnvDevelopment,
		SessionCapacity: 256,
		OutputDir:       ".",
		Clipboard:       true,
	}
}

// Load reads the YAML file at path when it exists, then applies .env and
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	if cfg.SessionCapacity <= 0 {
		return cfg, fmt.Errorf("session capacity must be positive, got %d", cfg.SessionCapacity)
	}
	return cfg, nil
}

// IsProduction reports whether logs should use the production encoder.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, constant.EnvProduction)
}

func applyEnvOverrides(cfg *Config) {
	if port, err := strconv.Atoi(getEnv("QRGEN_PORT", "")); err == nil {
		cfg.Port = port
	}
	if capacity, err := strconv.Atoi(getEnv("QRGEN_SESSION_CAPACITY", "")); err == nil {
		cfg.SessionCapacity = capacity
	}
	cfg.LogLevel = getEnv("QRGEN_LOG_LEVEL", cfg.LogLevel)
	cfg.Environment = getEnv("QRGEN_ENV", cfg.Environment)
	cfg.OutputDir = getEnv("QRGEN_OUTPUT_DIR", cfg.OutputDir)
	if v, err := strconv.ParseBool(getEnv("QRGEN_CLIPBOARD", "")); err == nil {
		cfg.Clipboard = v
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
