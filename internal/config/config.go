package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Data     DataConfig     `yaml:"data" envconfig:"DATA"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// DataConfig locates the delivery dataset files. The clean file takes
// priority over the raw file when both exist.
type DataConfig struct {
	Dir       string `yaml:"dir" envconfig:"DIR" default:"."`
	CleanFile string `yaml:"clean_file" envconfig:"CLEAN_FILE" default:"Food_Delivery_Times_CLEAN.csv"`
	RawFile   string `yaml:"raw_file" envconfig:"RAW_FILE" default:"Food_Delivery_Times.csv"`
	ExportDir string `yaml:"export_dir" envconfig:"EXPORT_DIR" default:"exports"`
}

// CleanPath returns the resolved path of the pre-cleaned dataset file.
func (d DataConfig) CleanPath() string {
	return filepath.Join(d.Dir, d.CleanFile)
}

// RawPath returns the resolved path of the raw dataset file.
func (d DataConfig) RawPath() string {
	return filepath.Join(d.Dir, d.RawFile)
}

// ExportPath returns the resolved path for an export artifact.
func (d DataConfig) ExportPath(filename string) string {
	return filepath.Join(d.Dir, d.ExportDir, filename)
}

// Load loads configuration from environment variables and config file.
// Environment variables (DELIVERY_ prefix) take precedence over the file.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("DELIVERY", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs overlays file values onto the env-derived config. The env
// side always carries a value because envconfig fills defaults for unset
// variables, so the env value only wins when its variable is explicitly
// set; otherwise a value present in the file replaces the default.
func mergeConfigs(fileConfig, envConfig Config) Config {
	out := envConfig

	if !envSet("DELIVERY_SERVER_PORT") && fileConfig.Server.Port != 0 {
		out.Server.Port = fileConfig.Server.Port
	}
	if !envSet("DELIVERY_SERVER_READ_TIMEOUT") && fileConfig.Server.ReadTimeout != 0 {
		out.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if !envSet("DELIVERY_SERVER_WRITE_TIMEOUT") && fileConfig.Server.WriteTimeout != 0 {
		out.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if !envSet("DELIVERY_SERVER_IDLE_TIMEOUT") && fileConfig.Server.IdleTimeout != 0 {
		out.Server.IdleTimeout = fileConfig.Server.IdleTimeout
	}
	if !envSet("DELIVERY_SERVER_SHUTDOWN_TIMEOUT") && fileConfig.Server.ShutdownTimeout != 0 {
		out.Server.ShutdownTimeout = fileConfig.Server.ShutdownTimeout
	}
	if !envSet("DELIVERY_SECURITY_RATE_LIMIT_RPS") && fileConfig.Security.RateLimit.RPS != 0 {
		out.Security.RateLimit.RPS = fileConfig.Security.RateLimit.RPS
	}
	if !envSet("DELIVERY_SECURITY_RATE_LIMIT_BURST") && fileConfig.Security.RateLimit.Burst != 0 {
		out.Security.RateLimit.Burst = fileConfig.Security.RateLimit.Burst
	}
	if !envSet("DELIVERY_LOGGING_LEVEL") && fileConfig.Logging.Level != "" {
		out.Logging.Level = fileConfig.Logging.Level
	}
	if !envSet("DELIVERY_LOGGING_FORMAT") && fileConfig.Logging.Format != "" {
		out.Logging.Format = fileConfig.Logging.Format
	}
	if !envSet("DELIVERY_LOGGING_OUTPUT") && fileConfig.Logging.Output != "" {
		out.Logging.Output = fileConfig.Logging.Output
	}
	if !envSet("DELIVERY_LOGGING_FILE_PATH") && fileConfig.Logging.FilePath != "" {
		out.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if !envSet("DELIVERY_DATA_DIR") && fileConfig.Data.Dir != "" {
		out.Data.Dir = fileConfig.Data.Dir
	}
	if !envSet("DELIVERY_DATA_CLEAN_FILE") && fileConfig.Data.CleanFile != "" {
		out.Data.CleanFile = fileConfig.Data.CleanFile
	}
	if !envSet("DELIVERY_DATA_RAW_FILE") && fileConfig.Data.RawFile != "" {
		out.Data.RawFile = fileConfig.Data.RawFile
	}
	if !envSet("DELIVERY_DATA_EXPORT_DIR") && fileConfig.Data.ExportDir != "" {
		out.Data.ExportDir = fileConfig.Data.ExportDir
	}

	return out
}

// envSet reports whether the variable is explicitly present in the
// environment, even when set to an empty string.
func envSet(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}

// validate checks the configuration for invalid values
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Data.CleanFile == "" && c.Data.RawFile == "" {
		return fmt.Errorf("no dataset file configured")
	}
	if c.Security.RateLimit.Enabled && c.Security.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive, got %f", c.Security.RateLimit.RPS)
	}
	return nil
}

// getConfigFilePath returns the config file location, overridable for tests
func getConfigFilePath() string {
	if path := os.Getenv("DELIVERY_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// FileExists reports whether the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
