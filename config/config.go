package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when no --config flag is given.
const DefaultPath = "privlaw.yaml"

// Config holds all privlaw configuration.
type Config struct {
	Name string `yaml:"name"`

	// Input dataset
	Data DataConfig `yaml:"data"`

	// HTTP dashboard
	Server ServerConfig `yaml:"server"`

	// Per-user view state store
	Sessions SessionConfig `yaml:"sessions"`

	// Logger construction
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig locates the dataset and controls the sample fallback.
type DataConfig struct {
	File               string `yaml:"file"`
	UseSampleIfMissing bool   `yaml:"use_sample_if_missing"`
	SampleSize         int    `yaml:"sample_size"`
	SampleSeed         int64  `yaml:"sample_seed"`
}

// ServerConfig configures the HTTP listener. Durations use time.ParseDuration syntax.
type ServerConfig struct {
	Listen            string `yaml:"listen"`
	ReadHeaderTimeout string `yaml:"read_header_timeout"`
	ReadTimeout       string `yaml:"read_timeout"`
	WriteTimeout      string `yaml:"write_timeout"`
	IdleTimeout       string `yaml:"idle_timeout"`
	ShutdownTimeout   string `yaml:"shutdown_timeout"`
}

// SessionConfig bounds the session store.
type SessionConfig struct {
	TTL         string `yaml:"ttl"`
	MaxSessions int    `yaml:"max_sessions"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Name: "privlaw",
		Data: DataConfig{
			File:               "Private_Laws_Data.csv",
			UseSampleIfMissing: true,
			SampleSize:         5000,
			SampleSeed:         42,
		},
		Server: ServerConfig{
			Listen:            "0.0.0.0:8050",
			ReadHeaderTimeout: "5s",
			ReadTimeout:       "20s",
			WriteTimeout:      "20s",
			IdleTimeout:       "60s",
			ShutdownTimeout:   "10s",
		},
		Sessions: SessionConfig{
			TTL:         "30m",
			MaxSessions: 1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("PRIVLAW_DATA_FILE"); path != "" {
		c.Data.File = path
	}
	if addr := os.Getenv("PRIVLAW_LISTEN"); addr != "" {
		c.Server.Listen = addr
	}
	if v := os.Getenv("PRIVLAW_USE_SAMPLE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Data.UseSampleIfMissing = b
		}
	}
	if level := os.Getenv("PRIVLAW_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
}

// GetReadHeaderTimeout returns the read header timeout as a duration.
func (c *Config) GetReadHeaderTimeout() time.Duration {
	return parseDuration(c.Server.ReadHeaderTimeout, 5*time.Second)
}

// GetReadTimeout returns the read timeout as a duration.
func (c *Config) GetReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, 20*time.Second)
}

// GetWriteTimeout returns the write timeout as a duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, 20*time.Second)
}

// GetIdleTimeout returns the idle timeout as a duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return parseDuration(c.Server.IdleTimeout, 60*time.Second)
}

// GetShutdownTimeout returns the graceful shutdown budget as a duration.
func (c *Config) GetShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

// GetSessionTTL returns the idle session lifetime as a duration.
func (c *Config) GetSessionTTL() time.Duration {
	return parseDuration(c.Sessions.TTL, 30*time.Minute)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats lists the accepted logging encoders.
var ValidLogFormats = []string{"json", "console"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Data.File == "" && !c.Data.UseSampleIfMissing {
		return fmt.Errorf("no data file configured (set data.file or PRIVLAW_DATA_FILE, or enable data.use_sample_if_missing)")
	}
	if c.Data.SampleSize < 0 {
		return fmt.Errorf("invalid data.sample_size: %d", c.Data.SampleSize)
	}
	if _, _, err := net.SplitHostPort(c.Server.Listen); err != nil {
		return fmt.Errorf("invalid server.listen %q: %w", c.Server.Listen, err)
	}
	if c.Sessions.MaxSessions <= 0 {
		return fmt.Errorf("invalid sessions.max_sessions: %d", c.Sessions.MaxSessions)
	}
	if !contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid logging.level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	if !contains(ValidLogFormats, c.Logging.Format) {
		return fmt.Errorf("invalid logging.format: %s (valid: %v)", c.Logging.Format, ValidLogFormats)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
