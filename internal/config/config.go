package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Hermes     HermesConfig     `yaml:"hermes"`
	Assessment AssessmentConfig `yaml:"assessment"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Port               int      `yaml:"port"`
	MetricsPort        int      `yaml:"metrics_port"`
	AdminToken         string   `yaml:"admin_token"`
	AllowedOrigins     []string `yaml:"allowed_origins"`
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"`
	ShutdownTimeoutMs  int      `yaml:"shutdown_timeout_ms"`
}

// DatabaseConfig points at the report archive. An empty URL runs the service
// without persistence.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// HermesConfig points at the NATS event bus. An empty URL disables events.
type HermesConfig struct {
	URL string `yaml:"url"`
}

type AssessmentConfig struct {
	MinAnswers       int    `yaml:"min_answers"`
	StrictValidation bool   `yaml:"strict_validation"`
	CataloguePath    string `yaml:"catalogue_path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8000,
			MetricsPort: 8001,
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://localhost:3000",
				"http://127.0.0.1:5173",
			},
			RateLimitPerMinute: 120,
			ShutdownTimeoutMs:  10000,
		},
		Assessment: AssessmentConfig{
			MinAnswers:       10,
			StrictValidation: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive, got %d", c.Server.Port)
	}
	if c.Server.MetricsPort <= 0 {
		return fmt.Errorf("server.metrics_port must be positive, got %d", c.Server.MetricsPort)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must not be negative, got %d", c.Server.RateLimitPerMinute)
	}
	if c.Database.URL != "" && c.Server.AdminToken == "" {
		return fmt.Errorf("server.admin_token is required when database.url is set")
	}
	if c.Assessment.MinAnswers <= 0 {
		return fmt.Errorf("assessment.min_answers must be positive, got %d", c.Assessment.MinAnswers)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("KINSHIP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("KINSHIP_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("KINSHIP_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("KINSHIP_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Server.AllowedOrigins = origins
	}
	if v := os.Getenv("KINSHIP_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("KINSHIP_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("KINSHIP_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("KINSHIP_MIN_ANSWERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Assessment.MinAnswers = n
		}
	}
	if v := os.Getenv("KINSHIP_STRICT_VALIDATION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Assessment.StrictValidation = b
		}
	}
	if v := os.Getenv("KINSHIP_CATALOGUE_PATH"); v != "" {
		cfg.Assessment.CataloguePath = v
	}
	if v := os.Getenv("KINSHIP_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("KINSHIP_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
