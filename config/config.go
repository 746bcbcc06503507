// Package config loads the server settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const PathEnv = "DEBT_PLANNER_CONFIG"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Redis     RedisConfig     `yaml:"redis"`
	Database  DatabaseConfig  `yaml:"database"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Sentry    SentryConfig    `yaml:"sentry"`
	Advisor   AdvisorConfig   `yaml:"advisor"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// RedisConfig enables the Redis projection cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// DatabaseConfig enables Postgres storage when URL is set.
type DatabaseConfig struct {
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type RateLimitConfig struct {
	Capacity int           `yaml:"capacity"`
	Refill   time.Duration `yaml:"refill"`
}

type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
}

type AdvisorConfig struct {
	APIKey     string        `yaml:"api_key"`
	APIURL     string        `yaml:"api_url"`
	Model      string        `yaml:"model"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Redis: RedisConfig{
			Prefix: "debt-planner:",
			TTL:    10 * time.Minute,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 10,
		},
		RateLimit: RateLimitConfig{
			Capacity: 5,
			Refill:   time.Minute,
		},
		Sentry: SentryConfig{
			Environment: "development",
		},
		Advisor: AdvisorConfig{
			Model:      "gpt-4o-mini",
			Timeout:    5 * time.Second,
			MaxRetries: 1,
		},
	}
}

// Load reads the file named by DEBT_PLANNER_CONFIG, if any, over the defaults
// and then applies environment overrides.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(PathEnv); path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.validate()
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parsing config %s", path)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	setString("DEBT_PLANNER_ADDR", &c.Server.Addr)
	setString("REDIS_ADDR", &c.Redis.Addr)
	setString("REDIS_PASSWORD", &c.Redis.Password)
	setString("DATABASE_URL", &c.Database.URL)
	setString("SENTRY_DSN", &c.Sentry.DSN)
	setString("SENTRY_ENVIRONMENT", &c.Sentry.Environment)
	setString("OPENAI_API_KEY", &c.Advisor.APIKey)
	setString("OPENAI_MODEL", &c.Advisor.Model)

	if v := getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "invalid REDIS_DB")
		}
		c.Redis.DB = db
	}
	if v := getenv("PROJECTION_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, "invalid PROJECTION_CACHE_TTL")
		}
		c.Redis.TTL = ttl
	}
	return nil
}

func (c Config) validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.RateLimit.Capacity <= 0 || c.RateLimit.Refill <= 0 {
		return errors.Errorf("invalid rate limit: capacity %d per %s", c.RateLimit.Capacity, c.RateLimit.Refill)
	}
	// el asesor responde dentro del mismo request, antes del WriteTimeout
	budget := c.Advisor.Timeout * time.Duration(c.Advisor.MaxRetries+1)
	if c.Advisor.Timeout <= 0 || c.Advisor.MaxRetries < 0 || budget >= c.Server.WriteTimeout {
		return errors.Errorf("invalid advisor budget: %s x %d attempts must stay under write timeout %s",
			c.Advisor.Timeout, c.Advisor.MaxRetries+1, c.Server.WriteTimeout)
	}
	if c.Redis.TTL < 0 {
		return errors.Errorf("invalid redis.ttl %s", c.Redis.TTL)
	}
	return nil
}
